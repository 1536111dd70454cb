package network

import (
	"github.com/samber/lo"

	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/livesync"
	"github.com/Naresh-M-tech/keralalt-line/pkg/types"
)

// LayerSet is the rendered map state: features grouped by health status,
// with a pulse overlay for everything that is not healthy. It is owned by
// the map view and only ever touched from the UI loop.
type LayerSet struct {
	groups map[string][]types.MapFeature
	pulse  map[string]struct{}
}

func NewLayerSet(features []types.MapFeature) *LayerSet {
	l := &LayerSet{
		groups: lo.GroupBy(features, func(f types.MapFeature) string { return f.Status }),
		pulse:  map[string]struct{}{},
	}

	for _, f := range features {
		if f.Status != types.FeatureStatusHealthy {
			l.pulse[f.ID] = struct{}{}
		}
	}

	return l
}

// Apply folds one change event into the layer set. A status change moves
// the feature between groups and updates the pulse overlay in the same
// step, so no intermediate state is ever rendered. Updates and deletes for
// features that were never rendered are dropped.
func (l *LayerSet) Apply(ev livesync.Event[types.MapFeature]) {
	switch ev.Type {
	case livesync.Insert:
		if l.contains(ev.Key) {
			return
		}
		l.add(ev.Item)

	case livesync.Update:
		if !l.contains(ev.Key) {
			return
		}
		l.remove(ev.Key)
		l.add(ev.Item)

	case livesync.Delete:
		l.remove(ev.Key)
	}
}

// Group returns the features rendered in the given status layer.
func (l *LayerSet) Group(status string) []types.MapFeature {
	return l.groups[status]
}

// Pulsing reports whether the feature is part of the pulse overlay.
func (l *LayerSet) Pulsing(id string) bool {
	_, ok := l.pulse[id]
	return ok
}

func (l *LayerSet) Len() int {
	return lo.SumBy(lo.Values(l.groups), func(g []types.MapFeature) int { return len(g) })
}

func (l *LayerSet) contains(id string) bool {
	for _, group := range l.groups {
		for _, f := range group {
			if f.ID == id {
				return true
			}
		}
	}
	return false
}

func (l *LayerSet) add(f types.MapFeature) {
	l.groups[f.Status] = append(l.groups[f.Status], f)
	if f.Status != types.FeatureStatusHealthy {
		l.pulse[f.ID] = struct{}{}
	}
}

func (l *LayerSet) remove(id string) {
	for status, group := range l.groups {
		l.groups[status] = lo.Reject(group, func(f types.MapFeature, _ int) bool { return f.ID == id })
	}
	delete(l.pulse, id)
}
