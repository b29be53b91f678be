//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Compiles the GLSL shaders under assets/shaders to SPIR-V with glslc.
// Stage files (.vert/.frag) next to their sources get a .spv sibling.
func (Build) Shaders() error {
	matches, err := filepath.Glob("assets/shaders/*.vert")
	if err != nil {
		return err
	}
	frags, err := filepath.Glob("assets/shaders/*.frag")
	if err != nil {
		return err
	}
	matches = append(matches, frags...)
	for _, src := range matches {
		out := src + ".spv"
		if _, err := executeCmd("glslc", withArgs(src, "-o", out), withStream()); err != nil {
			return err
		}
	}
	return nil
}

// Builds the engine binary.
func (Build) Binary() error {
	if err := os.MkdirAll("bin", 0o755); err != nil {
		return err
	}
	_, err := executeCmd("go", withArgs("build", "-o", "bin/candid", "."), withStream())
	return err
}
