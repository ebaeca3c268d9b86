package world

import "monkey-social/internal/domain/monkeys"

type Activity struct {
	Icon string
	Text string
}

// DailyActivities son los eventos de ambiente; se elige uno uniforme.
var DailyActivities = []Activity{
	{Icon: "🍌", Text: "吃了一根香蕉"},
	{Icon: "🌳", Text: "在树上荡秋千"},
	{Icon: "💤", Text: "打了个小盹"},
	{Icon: "🦋", Text: "追了一只蝴蝶"},
	{Icon: "🌸", Text: "闻了闻花香"},
	{Icon: "☁️", Text: "躺着看云"},
	{Icon: "🎵", Text: "哼了一首歌"},
	{Icon: "🏃", Text: "跑了几圈"},
	{Icon: "🪨", Text: "坐在石头上发呆"},
	{Icon: "🌊", Text: "在小溪边玩水"},
}

// SocialActivities son las actividades posibles de un encuentro automático.
var SocialActivities = []Activity{
	{Icon: "🎠", Text: "一起玩了秋千"},
	{Icon: "🍌", Text: "分享了一根香蕉"},
	{Icon: "☁️", Text: "一起看了云"},
	{Icon: "🙈", Text: "玩了捉迷藏"},
	{Icon: "💬", Text: "聊了聊天"},
	{Icon: "🎵", Text: "一起唱歌"},
	{Icon: "🤭", Text: "互相挠痒痒"},
	{Icon: "🌳", Text: "比赛爬树"},
}

// StatusEvent es lo que el mono registra y le dice al dueño cuando un umbral se dispara.
type StatusEvent struct {
	Message  monkeys.MessageType
	Say      string
	Activity Activity
}

var (
	TiredEvent = StatusEvent{
		Message:  monkeys.MessageTired,
		Say:      "好困...要睡觉了💤",
		Activity: Activity{Icon: "😴", Text: "困了，睡着了"},
	}
	LonelyEvent = StatusEvent{
		Message:  monkeys.MessageLonely,
		Say:      "好想你啊...你在忙吗？",
		Activity: Activity{Icon: "🥺", Text: "想主人了，望着远方"},
	}
	SadEvent = StatusEvent{
		Message:  monkeys.MessageSad,
		Say:      "今天心情不太好...",
		Activity: Activity{Icon: "😢", Text: "心情低落，蹲在角落"},
	}
)
