package worker

// Progress is the raw shape a transcoder's progress event carries,
// matching the consumed Transcoder interface's {percent, currentFps,
// frames, timemark, …}. Percent is computed here (from the parsed
// timemark against the input's known duration) since that's the one
// value every listener needs and the only one cheap to get right once.
type Progress struct {
	Percent         float64
	CurrentFps      float64
	Frames          int
	Timemark        string
	TimemarkSeconds float64
}

// Observer is the fixed event-bus shape a Worker drives, per the design
// note preferring a known, ordered observer list over dynamic
// subscription: onStart, onLine, onProgress, onEnd, onFailed.
type Observer interface {
	OnStart(commandLine []string)
	OnLine(line string)
	OnProgress(p Progress)
	OnEnd()
	OnFailed(err error)
}
