package core

import "sync"

const avgCount = 30

// MetricsState keeps a rolling average of frame times and a frames-per-
// second estimate, updated once per frame from the application loop.
type MetricsState struct {
	frameAvgCounter    int
	msTimes            [avgCount]float64
	MSavg              float64
	Frames             int64
	accumulatedFrameMS float64
	FPS                float64
}

var onceMetrics sync.Once
var metricsState *MetricsState

func MetricsInitialize() error {
	onceMetrics.Do(func() {
		metricsState = &MetricsState{}
	})
	return nil
}

// MetricsUpdate records one frame of frameElapsedTime seconds.
func MetricsUpdate(frameElapsedTime float64) {
	if metricsState == nil {
		return
	}

	frameMS := frameElapsedTime * 1000.0
	metricsState.msTimes[metricsState.frameAvgCounter] = frameMS
	if metricsState.frameAvgCounter == avgCount-1 {
		sum := 0.0
		for i := 0; i < avgCount; i++ {
			sum += metricsState.msTimes[i]
		}
		metricsState.MSavg = sum / float64(avgCount)
	}
	metricsState.frameAvgCounter = (metricsState.frameAvgCounter + 1) % avgCount

	metricsState.Frames++
	metricsState.accumulatedFrameMS += frameMS
	if metricsState.accumulatedFrameMS >= 1000.0 {
		metricsState.FPS = float64(metricsState.Frames) * 1000.0 / metricsState.accumulatedFrameMS
		metricsState.Frames = 0
		metricsState.accumulatedFrameMS = 0
	}
}

// MetricsFPS returns the latest frames-per-second estimate.
func MetricsFPS() float64 {
	if metricsState == nil {
		return 0
	}
	return metricsState.FPS
}

// MetricsFrameAvg returns the rolling average frame time in milliseconds.
func MetricsFrameAvg() float64 {
	if metricsState == nil {
		return 0
	}
	return metricsState.MSavg
}
