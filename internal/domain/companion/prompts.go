package companion

import (
	"fmt"
	"math"
	"strings"

	"monkey-social/internal/domain/monkeys"
	"monkey-social/internal/domain/relations"
)

const (
	personalityMaxTokens = 50
	welcomeMaxTokens     = 150
	interactionMaxTokens = 500

	// DefaultPersonality se usa cuando el modelo no responde.
	DefaultPersonality = "可爱的小猴子"
)

func personalityPrompt(t monkeys.Traits) string {
	return fmt.Sprintf(`基于以下性格特质（0-100），用一句话（15字以内）描述这只小猴子的性格：
冒险精神: %d
同理心: %d
独立性: %d
韧性: %d
安全感: %d
自我价值: %d
社交力: %d
信任: %d

只返回描述，不要其他内容。`,
		t.AdventureSpirit, t.Empathy, t.Independence, t.Resilience,
		t.Security, t.SelfWorth, t.SocialSkill, t.Trust)
}

// personalityHints traduce rasgos extremos a pistas de tono para el saludo. Sin rasgos no hay pistas.
func personalityHints(t *monkeys.Traits) []string {
	if t == nil {
		return nil
	}
	var hints []string
	if t.Security < 40 {
		hints = append(hints, "容易焦虑、害怕被抛弃")
	}
	if t.Security > 60 {
		hints = append(hints, "有安全感、情绪稳定")
	}
	if t.Independence > 60 {
		hints = append(hints, "独立、不太黏人")
	}
	if t.SocialSkill > 60 {
		hints = append(hints, "外向、喜欢聊天")
	}
	return hints
}

func welcomePrompt(m monkeys.Monkey, in WelcomeInput) string {
	personality := m.Personality
	if personality == "" {
		personality = "可爱"
	}
	hintLine := ""
	if hints := personalityHints(m.Traits); len(hints) > 0 {
		hintLine = "性格特点：" + strings.Join(hints, "、")
	}
	events := strings.Join(in.Events, "、")
	if events == "" {
		events = "等主人回来"
	}

	return fmt.Sprintf(`你是一只叫"%s"的小猴子，性格是：%s。
%s

主人离开了 %d 小时，现在回来了。
你在这段时间里：%s

用1-2句话跟主人打招呼，要：
1. 符合你的性格
2. 体现你离开这段时间的感受
3. 加上可爱的语气词和动作描写

只返回猴子说的话，不要其他内容。`,
		m.Name, personality, hintLine, int(math.Round(in.HoursAway)), events)
}

func interactionPrompt(me, other monkeys.Monkey, kind string, rel relations.Relation) string {
	return fmt.Sprintf(`两只小猴子在社交：
- %s（%s）
- %s（%s）

他们的关系等级：%d（0=陌生，5=好朋友）
互动类型：%s

用JSON格式返回：
{
  "dialogue": [
    {"speaker": "%s", "text": "...", "action": "动作描写"},
    {"speaker": "%s", "text": "...", "action": "动作描写"}
  ],
  "outcome": "positive/neutral/negative",
  "relationChange": 0到2的数字,
  "summary": "一句话总结",
  "newSharedMemory": "如果有值得记住的事"
}

只返回JSON，不要其他内容。`,
		me.Name, me.Personality, other.Name, other.Personality,
		rel.Level, kind, me.Name, other.Name)
}
