package companion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"monkey-social/internal/domain/monkeys"
	"monkey-social/internal/domain/relations"
	"monkey-social/internal/ports/completion"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedCompleter devuelve siempre reply/err y guarda lo que recibió.
type scriptedCompleter struct {
	reply     string
	err       error
	prompts   []string
	maxTokens []int
}

func (c *scriptedCompleter) Complete(_ context.Context, msgs []completion.Message, maxTokens int) (string, error) {
	for _, m := range msgs {
		c.prompts = append(c.prompts, m.Content)
	}
	c.maxTokens = append(c.maxTokens, maxTokens)
	return c.reply, c.err
}

func noResult(cause string) error {
	return fmt.Errorf("%w: %s", completion.ErrNoResult, cause)
}

func TestPersonality_FallsBackOnNoResult(t *testing.T) {
	c := &scriptedCompleter{err: noResult("rate limited")}
	svc := NewService(c, nil)

	got := svc.Personality(context.Background(), monkeys.Traits{Security: 30})

	assert.Equal(t, "可爱的小猴子", got)
	assert.Equal(t, []int{50}, c.maxTokens)
	assert.Contains(t, c.prompts[0], "安全感: 30")
}

func TestPersonality_TrimsModelText(t *testing.T) {
	svc := NewService(&scriptedCompleter{reply: "  勇敢又好奇\n"}, nil)
	assert.Equal(t, "勇敢又好奇", svc.Personality(context.Background(), monkeys.Traits{}))
}

func TestWelcome_HasNoFallback(t *testing.T) {
	c := &scriptedCompleter{err: noResult("network")}
	svc := NewService(c, nil)

	_, err := svc.Welcome(context.Background(), monkeys.Monkey{Name: "Bobo"}, WelcomeInput{HoursAway: 2.6})
	assert.True(t, errors.Is(err, completion.ErrNoResult))
	assert.Equal(t, []int{150}, c.maxTokens)
}

func TestWelcome_PromptCarriesHintsAndEvents(t *testing.T) {
	c := &scriptedCompleter{reply: "主人回来啦！"}
	svc := NewService(c, nil)

	m := monkeys.Monkey{Name: "Bobo", Traits: &monkeys.Traits{Security: 30, Independence: 70, SocialSkill: 61}}
	msg, err := svc.Welcome(context.Background(), m, WelcomeInput{HoursAway: 2.6, Events: []string{"吃了香蕉", "睡了觉"}})
	require.NoError(t, err)
	assert.Equal(t, "主人回来啦！", msg)

	p := c.prompts[0]
	assert.Contains(t, p, `叫"Bobo"`)
	assert.Contains(t, p, "性格是：可爱")
	assert.Contains(t, p, "容易焦虑、害怕被抛弃、独立、不太黏人、外向、喜欢聊天")
	assert.NotContains(t, p, "有安全感")
	assert.Contains(t, p, "离开了 3 小时")
	assert.Contains(t, p, "吃了香蕉、睡了觉")
}

func TestWelcome_NoEventsUsesWaitingLine(t *testing.T) {
	c := &scriptedCompleter{reply: "hi"}
	_, err := NewService(c, nil).Welcome(context.Background(), monkeys.Monkey{Name: "B"}, WelcomeInput{})
	require.NoError(t, err)
	assert.Contains(t, c.prompts[0], "你在这段时间里：等主人回来")
	assert.NotContains(t, c.prompts[0], "性格特点")
}

func TestWelcome_ZeroTraitsStillHint(t *testing.T) {
	c := &scriptedCompleter{reply: "hi"}
	m := monkeys.Monkey{Name: "B", Traits: &monkeys.Traits{}}
	_, err := NewService(c, nil).Welcome(context.Background(), m, WelcomeInput{})
	require.NoError(t, err)
	assert.Contains(t, c.prompts[0], "性格特点：容易焦虑、害怕被抛弃")
}

func TestInteraction_MalformedJSONFallsBack(t *testing.T) {
	svc := NewService(&scriptedCompleter{reply: "{not json"}, nil)
	me := monkeys.Monkey{ID: "a", Name: "Bobo"}
	other := monkeys.Monkey{ID: "b", Name: "Coco"}

	out := svc.Interaction(context.Background(), me, other, "打招呼", relations.Relation{})

	assert.Equal(t, SourceFallback, out.Source)
	assert.ErrorIs(t, out.Cause, ErrMalformedJSON)
	assert.Equal(t, OutcomePositive, out.Outcome)
	assert.Equal(t, 1, out.RelationChange)
	assert.Equal(t, "两只猴子友好地打了招呼", out.Summary)
	require.Len(t, out.Dialogue, 2)
	assert.Equal(t, DialogueLine{Speaker: "Bobo", Text: "你好呀！", Action: "开心地挥手"}, out.Dialogue[0])
	assert.Equal(t, DialogueLine{Speaker: "Coco", Text: "你好~", Action: "友好地回应"}, out.Dialogue[1])
}

func TestInteraction_NoResultFallsBack(t *testing.T) {
	svc := NewService(&scriptedCompleter{err: noResult("boom")}, nil)
	out := svc.Interaction(context.Background(), monkeys.Monkey{Name: "A"}, monkeys.Monkey{Name: "B"}, "x", relations.Relation{})
	assert.Equal(t, SourceFallback, out.Source)
	assert.ErrorIs(t, out.Cause, completion.ErrNoResult)
}

func TestInteraction_ModelReply(t *testing.T) {
	reply := "```json\n" + `{
  "dialogue": [{"speaker": "Bobo", "text": "一起爬树吧", "action": "跳起来"}],
  "outcome": "positive",
  "relationChange": 1.6,
  "summary": "约好爬树",
  "newSharedMemory": "第一次爬树"
}` + "\n```"
	c := &scriptedCompleter{reply: reply}
	svc := NewService(c, nil)

	out := svc.Interaction(context.Background(),
		monkeys.Monkey{Name: "Bobo", Personality: "勇敢"},
		monkeys.Monkey{Name: "Coco", Personality: "害羞"},
		"爬树", relations.Relation{Level: 3})

	assert.Equal(t, SourceModel, out.Source)
	assert.NoError(t, out.Cause)
	assert.Equal(t, 2, out.RelationChange)
	assert.Equal(t, "第一次爬树", out.NewSharedMemory)
	assert.Equal(t, []int{500}, c.maxTokens)
	assert.True(t, strings.Contains(c.prompts[0], "他们的关系等级：3"))
	assert.Contains(t, c.prompts[0], "- Bobo（勇敢）")
}

func TestParseInteraction_Errors(t *testing.T) {
	_, err := ParseInteraction("   ")
	assert.ErrorIs(t, err, ErrEmptyReply)

	_, err = ParseInteraction(`{"dialogue": [], "outcome": "positive"}`)
	assert.ErrorIs(t, err, ErrNoDialogue)

	got, err := ParseInteraction(`{"dialogue": [{"speaker":"a","text":"b"}], "outcome": "weird"}`)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNeutral, got.Outcome)
	assert.Equal(t, 0, got.RelationChange)
}
