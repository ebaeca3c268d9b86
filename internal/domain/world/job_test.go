package world

import (
	"context"
	"errors"
	"testing"
	"time"

	"monkey-social/internal/adapters/storage/memory"
	"monkey-social/internal/domain/monkeys"
	"monkey-social/internal/domain/notifications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedDice responde en orden lo que el test le programó.
// Sin guion: Chance=false, Intn=0, Shuffle=identidad.
type scriptedDice struct {
	chances []bool
	ints    []int
	shuffle func(n int, swap func(i, j int))

	asked []float64
}

func (d *scriptedDice) Chance(p float64) bool {
	d.asked = append(d.asked, p)
	if len(d.chances) == 0 {
		return false
	}
	v := d.chances[0]
	d.chances = d.chances[1:]
	return v
}

func (d *scriptedDice) Intn(n int) int {
	if len(d.ints) == 0 {
		return 0
	}
	v := d.ints[0]
	d.ints = d.ints[1:]
	return v % n
}

func (d *scriptedDice) Shuffle(n int, swap func(i, j int)) {
	if d.shuffle != nil {
		d.shuffle(n, swap)
	}
}

var testNow = time.UnixMilli(1_750_000_000_000)

type harness struct {
	st   *memory.Store
	mk   *monkeys.Service
	nt   *notifications.Service
	dice *scriptedDice
	job  *Job
}

func newHarness(t *testing.T, dice *scriptedDice) *harness {
	t.Helper()
	st := memory.NewStore(nil)
	h := &harness{
		st:   st,
		mk:   monkeys.NewService(monkeys.NewStoreRepo(st, nil)),
		nt:   notifications.NewService(notifications.NewStoreRepo(st)),
		dice: dice,
	}
	h.job = NewJob(Options{
		Monkeys:       h.mk,
		Notifications: h.nt,
		Writer:        st,
		Dice:          dice,
		Now:           func() time.Time { return testNow },
	})
	return h
}

// seed escribe el registro tal cual, sin pasar por Save (que pisa lastActive).
func (h *harness) seed(t *testing.T, m monkeys.Monkey) {
	t.Helper()
	require.NoError(t, h.st.Set(context.Background(), monkeys.Path(m.ID), m))
}

func (h *harness) get(t *testing.T, id string) monkeys.Monkey {
	t.Helper()
	m, err := h.mk.GetByID(context.Background(), id)
	require.NoError(t, err)
	return m
}

func mood(happiness, loneliness, energy int) *monkeys.Mood {
	return &monkeys.Mood{Happiness: happiness, Loneliness: loneliness, Energy: energy}
}

func recentPet(id, name string, m *monkeys.Mood) monkeys.Monkey {
	return monkeys.Monkey{
		ID:         id,
		Name:       name,
		OwnerName:  "owner-" + id,
		Mood:       m,
		Status:     monkeys.StatusActive,
		LastActive: testNow.Add(-time.Hour).UnixMilli(),
	}
}

func TestTick_DecayWithNoDraws(t *testing.T) {
	h := newHarness(t, &scriptedDice{})
	h.seed(t, recentPet("m1", "Bobo", mood(70, 20, 80)))

	rep, err := h.job.Tick(context.Background())
	require.NoError(t, err)

	got := h.get(t, "m1")
	assert.Equal(t, monkeys.Mood{Happiness: 69, Loneliness: 23, Energy: 78}, *got.Mood)
	assert.Empty(t, got.ActivityLog)
	assert.Nil(t, got.PendingMessage)
	assert.Equal(t, testNow.UnixMilli(), got.LastUpdated)
	assert.Equal(t, monkeys.StatusActive, got.Status)
	assert.Equal(t, 1, rep.Processed)
	assert.Zero(t, rep.Daily)
	// solo se tiró el dado diario
	assert.Equal(t, []float64{0.5}, h.dice.asked)
}

func TestTick_DailyEventWhenForced(t *testing.T) {
	h := newHarness(t, &scriptedDice{chances: []bool{true}, ints: []int{3}})
	h.seed(t, recentPet("m1", "Bobo", mood(70, 20, 80)))

	rep, err := h.job.Tick(context.Background())
	require.NoError(t, err)

	got := h.get(t, "m1")
	assert.Equal(t, monkeys.Mood{Happiness: 69, Loneliness: 23, Energy: 78}, *got.Mood)
	require.Len(t, got.ActivityLog, 1)
	e := got.ActivityLog[0]
	assert.Equal(t, monkeys.ActivityDaily, e.Type)
	assert.Equal(t, "🦋", e.Icon)
	assert.Equal(t, "追了一只蝴蝶", e.Text)
	assert.Equal(t, testNow.UnixMilli(), e.Timestamp)
	assert.Equal(t, 1, rep.Daily)
}

func TestTick_MissingMoodUsesDefault(t *testing.T) {
	h := newHarness(t, &scriptedDice{})
	h.seed(t, recentPet("m1", "Bobo", nil))

	_, err := h.job.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, monkeys.Mood{Happiness: 69, Loneliness: 23, Energy: 78}, *h.get(t, "m1").Mood)
}

func TestTick_ClampsAtBounds(t *testing.T) {
	h := newHarness(t, &scriptedDice{})
	h.seed(t, recentPet("m1", "Bobo", mood(0, 99, 1)))

	_, err := h.job.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, monkeys.Mood{Happiness: 0, Loneliness: 100, Energy: 0}, *h.get(t, "m1").Mood)
}

func TestTick_StatusEventsArePrioritizedAndExclusive(t *testing.T) {
	cases := []struct {
		name     string
		chances  []bool
		want     monkeys.MessageType
		asked    []float64
		energy   int
		wantIcon string
	}{
		{
			name:     "tired wins",
			chances:  []bool{false, true},
			want:     monkeys.MessageTired,
			asked:    []float64{0.5, 0.3},
			energy:   80,
			wantIcon: "😴",
		},
		{
			name:     "lonely when tired draw fails",
			chances:  []bool{false, false, true},
			want:     monkeys.MessageLonely,
			asked:    []float64{0.5, 0.3, 0.3},
			energy:   8,
			wantIcon: "🥺",
		},
		{
			name:     "sad when the others fail",
			chances:  []bool{false, false, false, true},
			want:     monkeys.MessageSad,
			asked:    []float64{0.5, 0.3, 0.3, 0.2},
			energy:   8,
			wantIcon: "😢",
		},
		{
			name:    "none",
			chances: []bool{false, false, false, false},
			asked:   []float64{0.5, 0.3, 0.3, 0.2},
			energy:  8,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, &scriptedDice{chances: tc.chances})
			// tras el desgaste: energy 8, loneliness 93, happiness 9 -> los tres umbrales activos
			h.seed(t, recentPet("m1", "Bobo", mood(10, 90, 10)))

			_, err := h.job.Tick(context.Background())
			require.NoError(t, err)

			got := h.get(t, "m1")
			assert.Equal(t, tc.asked, h.dice.asked)
			assert.Equal(t, tc.energy, got.Mood.Energy)
			assert.Equal(t, 93, got.Mood.Loneliness)
			if tc.want == "" {
				assert.Nil(t, got.PendingMessage)
				assert.Empty(t, got.ActivityLog)
				return
			}
			require.NotNil(t, got.PendingMessage)
			assert.Equal(t, tc.want, got.PendingMessage.Type)
			require.Len(t, got.ActivityLog, 1)
			assert.Equal(t, monkeys.ActivityStatus, got.ActivityLog[0].Type)
			assert.Equal(t, tc.wantIcon, got.ActivityLog[0].Icon)
		})
	}
}

func TestTick_StatusEventReplacesDailyEvent(t *testing.T) {
	h := newHarness(t, &scriptedDice{chances: []bool{true, true}})
	h.seed(t, recentPet("m1", "Bobo", mood(70, 20, 15)))

	rep, err := h.job.Tick(context.Background())
	require.NoError(t, err)

	got := h.get(t, "m1")
	require.Len(t, got.ActivityLog, 1)
	assert.Equal(t, "困了，睡着了", got.ActivityLog[0].Text)
	assert.Equal(t, "好困...要睡觉了💤", got.PendingMessage.Text)
	assert.Equal(t, 1, rep.Status)
	assert.Zero(t, rep.Daily)
}

func TestTick_ActivityLogKeepsNewestFifty(t *testing.T) {
	h := newHarness(t, &scriptedDice{chances: []bool{true}})
	p := recentPet("m1", "Bobo", mood(70, 20, 80))
	for i := 0; i < monkeys.MaxActivityLog; i++ {
		p.ActivityLog = append(p.ActivityLog, monkeys.ActivityEntry{Text: "old", Timestamp: int64(i + 1), Type: monkeys.ActivityDaily})
	}
	h.seed(t, p)

	_, err := h.job.Tick(context.Background())
	require.NoError(t, err)

	log := h.get(t, "m1").ActivityLog
	require.Len(t, log, monkeys.MaxActivityLog)
	assert.Equal(t, int64(2), log[0].Timestamp)
	assert.Equal(t, testNow.UnixMilli(), log[len(log)-1].Timestamp)
}

func TestTick_HibernationShortCircuits(t *testing.T) {
	month := DefaultRules().InactiveAfter

	h := newHarness(t, &scriptedDice{chances: []bool{true, true, true, true}})
	old := recentPet("old", "Old", mood(70, 20, 80))
	old.LastActive = testNow.Add(-month).UnixMilli() - 1
	old.ActivityLog = []monkeys.ActivityEntry{{Text: "x", Timestamp: 1}}
	edge := recentPet("edge", "Edge", mood(70, 20, 80))
	edge.LastActive = testNow.Add(-month).UnixMilli()
	h.seed(t, old)
	h.seed(t, edge)

	rep, err := h.job.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Hibernated)

	gotOld := h.get(t, "old")
	assert.Equal(t, monkeys.StatusHibernating, gotOld.Status)
	assert.Equal(t, testNow.UnixMilli(), gotOld.HibernatingSince)
	assert.Equal(t, monkeys.Mood{Happiness: 70, Loneliness: 20, Energy: 80}, *gotOld.Mood)
	assert.Len(t, gotOld.ActivityLog, 1)
	assert.Zero(t, gotOld.LastUpdated)

	gotEdge := h.get(t, "edge")
	assert.Equal(t, monkeys.StatusActive, gotEdge.Status)
	assert.Equal(t, 78, gotEdge.Mood.Energy)
}

func TestTick_LastVisitTimeFallbackAndKeepsHibernatingSince(t *testing.T) {
	month := DefaultRules().InactiveAfter
	h := newHarness(t, &scriptedDice{})

	visitOnly := monkeys.Monkey{ID: "v", Name: "V", LastVisitTime: testNow.Add(-2 * month).UnixMilli()}
	sleeping := monkeys.Monkey{
		ID: "s", Name: "S",
		Status:           monkeys.StatusHibernating,
		HibernatingSince: 12345,
		LastActive:       testNow.Add(-2 * month).UnixMilli(),
	}
	never := monkeys.Monkey{ID: "n", Name: "N"}
	h.seed(t, visitOnly)
	h.seed(t, sleeping)
	h.seed(t, never)

	rep, err := h.job.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, rep.Processed)
	assert.Equal(t, 2, rep.Hibernated)

	assert.Equal(t, monkeys.StatusHibernating, h.get(t, "v").Status)
	assert.Equal(t, int64(12345), h.get(t, "s").HibernatingSince)
	assert.Equal(t, monkeys.StatusActive, h.get(t, "n").Status)
}

func TestTick_SkipsRecordsWithoutID(t *testing.T) {
	h := newHarness(t, &scriptedDice{})
	require.NoError(t, h.st.Set(context.Background(), "monkeys/ghost", map[string]any{"name": "Ghost"}))

	rep, err := h.job.Tick(context.Background())
	require.NoError(t, err)
	assert.Zero(t, rep.Processed)
	assert.Zero(t, rep.Writes)
}

func TestTick_PrunesNotificationsOlderThanSevenDays(t *testing.T) {
	h := newHarness(t, &scriptedDice{})
	ctx := context.Background()
	week := DefaultRules().NotificationRetention.Milliseconds()
	now := testNow.UnixMilli()

	put := func(id string, ts int64) {
		require.NoError(t, h.st.Set(ctx, notifications.Path("o1", id), notifications.Notification{
			Type: notifications.TypeAutoSocial, Summary: id, Timestamp: ts,
		}))
	}
	put("inside", now-week+1)
	put("outside", now-week-1)
	put("exact", now-week)
	put("undated", 0)

	rep, err := h.job.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Pruned)

	items, err := h.nt.List(ctx, "o1")
	require.NoError(t, err)
	var ids []string
	for _, n := range items {
		ids = append(ids, n.ID)
	}
	assert.ElementsMatch(t, []string{"inside", "exact", "undated"}, ids)
}

func TestTick_PairsTwoLonelyPets(t *testing.T) {
	// tres mascotas: dado diario x3 (false), luego el dado social (true)
	h := newHarness(t, &scriptedDice{chances: []bool{false, false, false, true}, ints: []int{2}})
	ctx := context.Background()

	h.seed(t, recentPet("a", "A", mood(95, 60, 80)))
	h.seed(t, recentPet("b", "B", mood(50, 55, 80)))
	h.seed(t, recentPet("c", "C", mood(50, 58, 80)))

	rep, err := h.job.Tick(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, rep.Paired)

	a, b, c := h.get(t, "a"), h.get(t, "b"), h.get(t, "c")
	// desgaste (+3 soledad, -1 felicidad) y luego exactamente -20 / +10
	assert.Equal(t, monkeys.Mood{Happiness: 100, Loneliness: 43, Energy: 78}, *a.Mood)
	assert.Equal(t, monkeys.Mood{Happiness: 59, Loneliness: 38, Energy: 78}, *b.Mood)
	assert.Equal(t, monkeys.Mood{Happiness: 49, Loneliness: 61, Energy: 78}, *c.Mood)

	require.Len(t, a.ActivityLog, 1)
	assert.Equal(t, monkeys.ActivitySocial, a.ActivityLog[0].Type)
	assert.Equal(t, "和 B 一起看了云", a.ActivityLog[0].Text)
	assert.Equal(t, "☁️", a.ActivityLog[0].Icon)
	require.NotNil(t, a.ActivityLog[0].WithMonkey)
	assert.Equal(t, monkeys.Ref{ID: "b", Name: "B"}, *a.ActivityLog[0].WithMonkey)
	assert.Equal(t, "和 A 一起看了云", b.ActivityLog[0].Text)
	assert.Empty(t, c.ActivityLog)

	toA, err := h.nt.List(ctx, "a")
	require.NoError(t, err)
	require.Len(t, toA, 1)
	assert.Equal(t, notifications.TypeAutoSocial, toA[0].Type)
	assert.Equal(t, "A 和 B 一起看了云！", toA[0].Summary)
	assert.Equal(t, monkeys.Ref{ID: "b", Name: "B", OwnerName: "owner-b"}, toA[0].FromMonkey)
	// el reloj del tick sella también las notificaciones
	assert.Equal(t, testNow.UnixMilli(), toA[0].Timestamp)

	toB, err := h.nt.List(ctx, "b")
	require.NoError(t, err)
	require.Len(t, toB, 1)
	assert.Equal(t, "B 和 A 一起看了云！", toB[0].Summary)
	assert.Equal(t, testNow.UnixMilli(), toB[0].Timestamp)
}

func TestTick_PairingUsesShuffleOrder(t *testing.T) {
	reverse := func(n int, swap func(i, j int)) {
		for i := 0; i < n/2; i++ {
			swap(i, n-1-i)
		}
	}
	h := newHarness(t, &scriptedDice{chances: []bool{false, false, false, true}, shuffle: reverse})
	h.seed(t, recentPet("a", "A", mood(50, 60, 80)))
	h.seed(t, recentPet("b", "B", mood(50, 60, 80)))
	h.seed(t, recentPet("c", "C", mood(50, 60, 80)))

	rep, err := h.job.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, rep.Paired)
	assert.Equal(t, 63, h.get(t, "a").Mood.Loneliness)
}

func TestTick_PairingExcludesHibernatingAndSoloCandidates(t *testing.T) {
	month := DefaultRules().InactiveAfter
	h := newHarness(t, &scriptedDice{chances: []bool{false, false, false, true}})

	h.seed(t, recentPet("a", "A", mood(50, 60, 80)))

	stored := recentPet("b", "B", mood(50, 60, 80))
	stored.Status = monkeys.StatusHibernating
	h.seed(t, stored)

	gone := recentPet("c", "C", mood(50, 90, 80))
	gone.LastActive = testNow.Add(-month).UnixMilli() - 1
	h.seed(t, gone)

	calm := recentPet("d", "D", mood(50, 10, 80))
	h.seed(t, calm)

	rep, err := h.job.Tick(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rep.Paired)
	// a, b y d tiran el dado diario; con un solo candidato no hay dado social
	assert.Equal(t, []float64{0.5, 0.5, 0.5}, h.dice.asked)
	// b vuelve a estar activo porque su dueño lo visitó hace poco
	assert.Equal(t, monkeys.StatusActive, h.get(t, "b").Status)
}

func TestTick_StatusMessageAndSocialBonusBothApply(t *testing.T) {
	// a: diario false, solo true; b: diario false, solo false; social true
	h := newHarness(t, &scriptedDice{chances: []bool{false, true, false, false, true}})
	h.seed(t, recentPet("a", "A", mood(50, 80, 80)))
	h.seed(t, recentPet("b", "B", mood(50, 80, 80)))

	rep, err := h.job.Tick(context.Background())
	require.NoError(t, err)
	require.Len(t, rep.Paired, 2)

	a := h.get(t, "a")
	require.NotNil(t, a.PendingMessage)
	assert.Equal(t, monkeys.MessageLonely, a.PendingMessage.Type)
	require.Len(t, a.ActivityLog, 2)
	assert.Equal(t, monkeys.ActivityStatus, a.ActivityLog[0].Type)
	assert.Equal(t, monkeys.ActivitySocial, a.ActivityLog[1].Type)
	assert.Equal(t, 63, a.Mood.Loneliness)
}

type failingLister struct{}

func (failingLister) List(context.Context) ([]monkeys.Monkey, error) {
	return nil, errors.New("store down")
}

type failingBox struct{ *notifications.Service }

func (failingBox) ListAll(context.Context) (map[string][]notifications.Notification, error) {
	return nil, errors.New("store down")
}

type countingWriter struct{ calls int }

func (w *countingWriter) Update(context.Context, map[string]any) error {
	w.calls++
	return nil
}

func TestTick_ReadFailuresAbortWithoutWriting(t *testing.T) {
	h := newHarness(t, &scriptedDice{})
	h.seed(t, recentPet("m1", "Bobo", mood(70, 20, 80)))

	w := &countingWriter{}
	job := NewJob(Options{Monkeys: failingLister{}, Notifications: h.nt, Writer: w, Dice: &scriptedDice{}})
	_, err := job.Tick(context.Background())
	assert.Error(t, err)

	job = NewJob(Options{Monkeys: h.mk, Notifications: failingBox{h.nt}, Writer: w, Dice: &scriptedDice{}})
	_, err = job.Tick(context.Background())
	assert.Error(t, err)

	assert.Zero(t, w.calls)
}

type rejectingWriter struct{}

func (rejectingWriter) Update(context.Context, map[string]any) error {
	return errors.New("permission denied")
}

func TestTick_BatchErrorIsReturned(t *testing.T) {
	h := newHarness(t, &scriptedDice{})
	h.seed(t, recentPet("m1", "Bobo", mood(70, 20, 80)))

	job := NewJob(Options{Monkeys: h.mk, Notifications: h.nt, Writer: rejectingWriter{}, Dice: &scriptedDice{}})
	rep, err := job.Tick(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch write")
	assert.Equal(t, 1, rep.Processed)
}

func TestTick_RepeatedTicksStayInBounds(t *testing.T) {
	h := newHarness(t, &scriptedDice{})
	h.job = NewJob(Options{
		Monkeys:       h.mk,
		Notifications: h.nt,
		Writer:        h.st,
		Dice:          NewSeededDice(7),
		Now:           func() time.Time { return testNow },
	})
	h.seed(t, recentPet("a", "A", mood(100, 0, 100)))
	h.seed(t, recentPet("b", "B", mood(0, 100, 0)))
	h.seed(t, recentPet("c", "C", mood(50, 55, 19)))

	for i := 0; i < 120; i++ {
		_, err := h.job.Tick(context.Background())
		require.NoError(t, err)
	}

	for _, id := range []string{"a", "b", "c"} {
		m := h.get(t, id)
		for _, v := range []int{m.Mood.Happiness, m.Mood.Loneliness, m.Mood.Energy} {
			assert.GreaterOrEqual(t, v, 0)
			assert.LessOrEqual(t, v, 100)
		}
		assert.LessOrEqual(t, len(m.ActivityLog), monkeys.MaxActivityLog)
	}
}
