package event

// Event 诊断事件
//
// Extent 为 nil 表示"无时间信息"（时钟不可用时 runtime 层保持 nil，
// Sink 必须容忍）。Props 保持追加顺序。
type Event struct {
	Msg    string
	Level  Level
	Extent *Extent
	Props  Props
}

// New 构造事件
func New(level Level, msg string, props ...Prop) *Event {
	return &Event{Msg: msg, Level: level, Props: props}
}
