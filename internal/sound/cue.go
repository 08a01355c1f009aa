// Package sound plays short cues for table events. Building with the ci tag
// swaps in a silent player.
package sound

// Cue 音效名，对应 assets/sounds 下的文件名（不含扩展名）
type Cue string

const (
	CueDeal     Cue = "deal"
	CueTransfer Cue = "transfer"
	CueBook     Cue = "book"
)

// DefaultDir 默认音效目录
const DefaultDir = "assets/sounds"
