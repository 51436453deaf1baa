// Package progress subscribes to the engine's push channel and maps its
// percentage updates onto the fixed visual pipeline.
package progress

// StageCount is the number of stages in the visual pipeline.
const StageCount = 8

// StageNames are the fixed pipeline stages, in order.
var StageNames = [StageCount]string{
	"Initializing",
	"Parsing input",
	"Analyzing document",
	"Planning architecture",
	"Generating code",
	"Writing files",
	"Indexing repository",
	"Finalizing",
}

// Event is one frame from the push channel.
type Event struct {
	Progress float64 `json:"progress"` // 0..100
	Message  string  `json:"message"`
}

// StageIndex maps a 0..100 progress value onto a stage index by floor
// division into 8 equal bands of 12.5 points. 100 maps to StageCount,
// one past the last stage, meaning every stage is complete.
func StageIndex(progress float64) int {
	if progress <= 0 {
		return 0
	}
	if progress >= 100 {
		return StageCount
	}
	return int(progress * StageCount / 100)
}
