// Package world es el tick periódico que hace avanzar a todos los monos:
// desgaste de ánimo, eventos del día, hibernación, poda de notificaciones y
// encuentros automáticos entre monos solitarios.
package world

import (
	"context"
	"fmt"
	"time"

	"monkey-social/internal/domain/monkeys"
	"monkey-social/internal/domain/notifications"
	"monkey-social/internal/platform/logger"
)

type MonkeyLister interface {
	List(ctx context.Context) ([]monkeys.Monkey, error)
}

type NotificationBox interface {
	ListAll(ctx context.Context) (map[string][]notifications.Notification, error)
	SendAt(ctx context.Context, toOwnerID string, n notifications.Notification, ts int64) (notifications.Notification, error)
}

// BatchWriter aplica todas las escrituras del tick en un solo envío (store.Store lo cumple).
type BatchWriter interface {
	Update(ctx context.Context, updates map[string]any) error
}

// Report resume un tick.
type Report struct {
	Processed  int      `json:"processed"`
	Hibernated int      `json:"hibernated"`
	Daily      int      `json:"daily"`
	Status     int      `json:"status"`
	Pruned     int      `json:"pruned"`
	Paired     []string `json:"paired,omitempty"`
	Writes     int      `json:"writes"`
}

type Options struct {
	Monkeys       MonkeyLister
	Notifications NotificationBox
	Writer        BatchWriter

	Dice    Dice
	Rules   *Rules
	Now     func() time.Time
	Log     logger.Logger
	Metrics *Metrics
}

type Job struct {
	monkeys MonkeyLister
	notifs  NotificationBox
	writer  BatchWriter

	dice    Dice
	rules   Rules
	now     func() time.Time
	log     logger.Logger
	metrics *Metrics
}

func NewJob(o Options) *Job {
	j := &Job{
		monkeys: o.Monkeys,
		notifs:  o.Notifications,
		writer:  o.Writer,
		dice:    o.Dice,
		rules:   DefaultRules(),
		now:     o.Now,
		log:     o.Log,
		metrics: o.Metrics,
	}
	if o.Rules != nil {
		j.rules = *o.Rules
	}
	if j.dice == nil {
		j.dice = NewDice()
	}
	if j.now == nil {
		j.now = time.Now
	}
	if j.log == nil {
		j.log = logger.Nop()
	}
	return j
}

// petState es el resultado del tick para un mono activo, antes de escribirse.
type petState struct {
	m       monkeys.Monkey
	mood    monkeys.Mood
	log     []monkeys.ActivityEntry
	pending *monkeys.PendingMessage
}

// Tick corre una pasada completa. Un error leyendo monos o notificaciones aborta sin escribir;
// un error del batch se devuelve tal cual (no hay reintento).
func (j *Job) Tick(ctx context.Context) (rep Report, err error) {
	started := time.Now()
	defer func() {
		j.metrics.observe(rep, err, time.Since(started))
	}()

	all, err := j.monkeys.List(ctx)
	if err != nil {
		return rep, fmt.Errorf("world: list monkeys: %w", err)
	}

	now := j.now().UnixMilli()
	batch := newBatch()

	var active []*petState
	for _, m := range all {
		if m.ID == "" {
			continue
		}
		rep.Processed++

		if j.inactive(m, now) {
			rep.Hibernated++
			j.hibernate(batch, m, now)
			continue
		}

		st, kind := j.advance(m, now)
		switch kind {
		case monkeys.ActivityDaily:
			rep.Daily++
		case monkeys.ActivityStatus:
			rep.Status++
		}
		active = append(active, st)
	}

	boxes, err := j.notifs.ListAll(ctx)
	if err != nil {
		return rep, fmt.Errorf("world: list notifications: %w", err)
	}
	rep.Pruned = j.prune(batch, boxes, now)

	if a, b, act, ok := j.pickPair(active); ok {
		j.socialize(ctx, a, b, act, now)
		rep.Paired = []string{a.m.ID, b.m.ID}
	}

	for _, st := range active {
		stage(batch, st, now)
	}

	rep.Writes = len(batch.updates)
	if rep.Writes == 0 {
		return rep, nil
	}
	if err := j.writer.Update(ctx, batch.updates); err != nil {
		return rep, fmt.Errorf("world: batch write: %w", err)
	}

	j.log.Info("world tick", map[string]any{
		"processed":  rep.Processed,
		"hibernated": rep.Hibernated,
		"pruned":     rep.Pruned,
		"paired":     rep.Paired,
		"writes":     rep.Writes,
	})
	return rep, nil
}

// inactive: más de InactiveAfter desde lastActive (o lastVisitTime). Sin ninguno cuenta como activo.
func (j *Job) inactive(m monkeys.Monkey, now int64) bool {
	last := m.LastActive
	if last == 0 {
		last = m.LastVisitTime
	}
	if last == 0 {
		last = now
	}
	return now-last > j.rules.InactiveAfter.Milliseconds()
}

func (j *Job) hibernate(b *batch, m monkeys.Monkey, now int64) {
	// Ya dormido: se conserva la fecha original.
	if m.Status == monkeys.StatusHibernating && m.HibernatingSince != 0 {
		return
	}
	b.set(monkeys.FieldPath(m.ID, "status"), monkeys.StatusHibernating)
	b.set(monkeys.FieldPath(m.ID, "hibernatingSince"), now)
}

// advance aplica desgaste, evento diario y evento de estado. Devuelve qué tipo de entrada quedó en el log.
func (j *Job) advance(m monkeys.Monkey, now int64) (*petState, monkeys.ActivityType) {
	r := j.rules
	st := &petState{
		m:    m,
		mood: m.CurrentMood().Adjust(-r.HappinessDecay, r.LonelinessGrowth, -r.EnergyDecay),
		log:  m.ActivityLog,
	}

	var entry *monkeys.ActivityEntry
	if j.dice.Chance(r.DailyChance) {
		act := DailyActivities[j.dice.Intn(len(DailyActivities))]
		entry = &monkeys.ActivityEntry{Icon: act.Icon, Text: act.Text, Timestamp: now, Type: monkeys.ActivityDaily}
	}

	// Orden fijo: cansado, solo, triste. Como mucho uno; pisa al evento diario.
	var ev *StatusEvent
	switch {
	case st.mood.Energy < r.TiredBelow && j.dice.Chance(r.TiredChance):
		ev = &TiredEvent
		st.mood.Energy = monkeys.Clamp(r.TiredEnergyReset)
	case st.mood.Loneliness > r.LonelyAbove && j.dice.Chance(r.LonelyChance):
		ev = &LonelyEvent
	case st.mood.Happiness < r.SadBelow && j.dice.Chance(r.SadChance):
		ev = &SadEvent
	}
	if ev != nil {
		st.pending = &monkeys.PendingMessage{Type: ev.Message, Text: ev.Say, Timestamp: now}
		entry = &monkeys.ActivityEntry{Icon: ev.Activity.Icon, Text: ev.Activity.Text, Timestamp: now, Type: monkeys.ActivityStatus}
	}

	if entry == nil {
		return st, ""
	}
	st.log = monkeys.AppendActivity(st.log, *entry)
	return st, entry.Type
}

func (j *Job) prune(b *batch, boxes map[string][]notifications.Notification, now int64) int {
	retention := j.rules.NotificationRetention.Milliseconds()
	pruned := 0
	for owner, items := range boxes {
		for _, n := range items {
			// sin timestamp no se poda
			if n.Timestamp == 0 || now-n.Timestamp <= retention {
				continue
			}
			b.remove(notifications.Path(owner, n.ID))
			pruned++
		}
	}
	return pruned
}

// pickPair elige dos monos solitarios no hibernados. Los candidatos se evalúan con el ánimo ya
// actualizado en este tick.
func (j *Job) pickPair(active []*petState) (a, b *petState, act Activity, ok bool) {
	r := j.rules
	var lonely []*petState
	for _, st := range active {
		if st.m.Status == monkeys.StatusHibernating {
			continue
		}
		// sin mood guardado no participa
		if st.m.Mood == nil {
			continue
		}
		if st.mood.Loneliness > r.SocialLonelinessAbove {
			lonely = append(lonely, st)
		}
	}
	if len(lonely) < 2 || !j.dice.Chance(r.SocialChance) {
		return nil, nil, Activity{}, false
	}

	j.dice.Shuffle(len(lonely), func(i, k int) { lonely[i], lonely[k] = lonely[k], lonely[i] })
	act = SocialActivities[j.dice.Intn(len(SocialActivities))]
	return lonely[0], lonely[1], act, true
}

func (j *Job) socialize(ctx context.Context, a, b *petState, act Activity, now int64) {
	r := j.rules
	for _, pair := range [][2]*petState{{a, b}, {b, a}} {
		self, other := pair[0], pair[1]
		self.mood = self.mood.Adjust(r.SocialHappinessBoost, -r.SocialLonelinessRelief, 0)
		self.log = monkeys.AppendActivity(self.log, monkeys.ActivityEntry{
			Icon:       act.Icon,
			Text:       fmt.Sprintf("和 %s %s", other.m.Name, act.Text),
			Timestamp:  now,
			Type:       monkeys.ActivitySocial,
			WithMonkey: &monkeys.Ref{ID: other.m.ID, Name: other.m.Name},
		})
	}

	// Las notificaciones salen antes del batch; si fallan el encuentro igual queda registrado.
	for _, pair := range [][2]*petState{{a, b}, {b, a}} {
		self, other := pair[0], pair[1]
		_, err := j.notifs.SendAt(ctx, self.m.ID, notifications.Notification{
			Type:       notifications.TypeAutoSocial,
			FromMonkey: other.m.Ref(),
			Summary:    fmt.Sprintf("%s 和 %s %s！", self.m.Name, other.m.Name, act.Text),
		}, now)
		if err != nil {
			j.log.Warn("auto social notify failed", map[string]any{"err": err, "to": self.m.ID})
		}
	}
}

func stage(b *batch, st *petState, now int64) {
	id := st.m.ID
	b.set(monkeys.FieldPath(id, "mood"), st.mood)
	b.set(monkeys.FieldPath(id, "lastUpdated"), now)
	b.set(monkeys.FieldPath(id, "status"), monkeys.StatusActive)
	b.set(monkeys.FieldPath(id, "activityLog"), st.log)
	if st.pending != nil {
		b.set(monkeys.FieldPath(id, "pendingMessage"), *st.pending)
	}
}

// batch acumula escrituras con paths absolutos (formato del PATCH multi-path).
type batch struct {
	updates map[string]any
}

func newBatch() *batch {
	return &batch{updates: map[string]any{}}
}

func (b *batch) set(path string, v any) { b.updates["/"+path] = v }
func (b *batch) remove(path string)     { b.updates["/"+path] = nil }
