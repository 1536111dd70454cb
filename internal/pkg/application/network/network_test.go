package network

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/matryer/is"

	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/livesync"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/infrastructure/backend"
	"github.com/Naresh-M-tech/keralalt-line/pkg/types"
)

type fakeSubscription struct{}

func (f *fakeSubscription) Unsubscribe() {}

const substationRow = `{
	"type": "Feature",
	"properties": {"id": "SUB-TVM", "type": "Substation", "status": "Healthy"},
	"geometry": {"type": "Point", "coordinates": [76.9366, 8.5241]}
}`

const htLineRow = `{
	"type": "Feature",
	"properties": {"id": "HT-004", "type": "HT Line", "status": "Warning"},
	"geometry": {"type": "LineString", "coordinates": [[76.9366, 8.5241], [76.95, 8.53]]}
}`

func TestMountDecodesGeoJSONFeatureRows(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	rows := &backend.RowStoreMock{
		SelectFunc: func(ctx context.Context, table string, q backend.Query) ([]json.RawMessage, error) {
			is.Equal(networkTable, table)
			return []json.RawMessage{[]byte(substationRow), []byte(htLineRow)}, nil
		},
	}

	feed := &backend.ChangeFeedMock{
		SubscribeFunc: func(ctx context.Context, table string, fn func(backend.RowEvent)) (backend.Subscription, error) {
			return &fakeSubscription{}, nil
		},
	}

	svc := New(rows, feed)

	c := svc.Mount(ctx, func(ev livesync.Event[types.MapFeature]) {})
	is.NoErr(c.Err())
	is.Equal(2, c.Len())

	features := c.Snapshot()
	is.Equal("SUB-TVM", features[0].ID)
	is.Equal(types.FeatureTypeSubstation, features[0].Type)
	is.Equal("Point", features[0].Geometry.Type)
	is.Equal(8.5241, features[0].Geometry.Point[1])

	is.Equal("HT-004", features[1].ID)
	is.Equal("LineString", features[1].Geometry.Type)
	is.Equal(2, len(features[1].Geometry.LineString))
}

func TestStatusChangeMovesGroupAndPulseAtomically(t *testing.T) {
	is := is.New(t)

	features := []types.MapFeature{
		{ID: "SUB-TVM", Type: types.FeatureTypeSubstation, Status: types.FeatureStatusHealthy},
		{ID: "HT-004", Type: types.FeatureTypeHTLine, Status: types.FeatureStatusWarning},
	}

	layers := NewLayerSet(features)
	is.Equal(1, len(layers.Group(types.FeatureStatusHealthy)))
	is.Equal(1, len(layers.Group(types.FeatureStatusWarning)))
	is.True(layers.Pulsing("HT-004"))
	is.True(!layers.Pulsing("SUB-TVM"))

	layers.Apply(livesync.Event[types.MapFeature]{
		Type: livesync.Update,
		Key:  "SUB-TVM",
		Item: types.MapFeature{ID: "SUB-TVM", Type: types.FeatureTypeSubstation, Status: types.FeatureStatusCritical},
	})

	is.Equal(0, len(layers.Group(types.FeatureStatusHealthy)))
	is.Equal(1, len(layers.Group(types.FeatureStatusCritical)))
	is.True(layers.Pulsing("SUB-TVM"))
	is.Equal(2, layers.Len())

	// recovery drops the pulse again
	layers.Apply(livesync.Event[types.MapFeature]{
		Type: livesync.Update,
		Key:  "HT-004",
		Item: types.MapFeature{ID: "HT-004", Type: types.FeatureTypeHTLine, Status: types.FeatureStatusHealthy},
	})

	is.True(!layers.Pulsing("HT-004"))
	is.Equal(1, len(layers.Group(types.FeatureStatusHealthy)))
}

func TestEventsForUnrenderedFeaturesAreDropped(t *testing.T) {
	is := is.New(t)

	layers := NewLayerSet([]types.MapFeature{
		{ID: "SUB-TVM", Type: types.FeatureTypeSubstation, Status: types.FeatureStatusHealthy},
	})

	layers.Apply(livesync.Event[types.MapFeature]{
		Type: livesync.Update,
		Key:  "HT-999",
		Item: types.MapFeature{ID: "HT-999", Type: types.FeatureTypeHTLine, Status: types.FeatureStatusCritical},
	})

	is.Equal(1, layers.Len())
	is.True(!layers.Pulsing("HT-999"))
	is.Equal(0, len(layers.Group(types.FeatureStatusCritical)))

	layers.Apply(livesync.Event[types.MapFeature]{Type: livesync.Delete, Key: "HT-999"})
	is.Equal(1, layers.Len())
}

func TestInsertAddsANewFeatureToItsLayer(t *testing.T) {
	is := is.New(t)

	layers := NewLayerSet(nil)

	layers.Apply(livesync.Event[types.MapFeature]{
		Type: livesync.Insert,
		Key:  "LT-101",
		Item: types.MapFeature{ID: "LT-101", Type: types.FeatureTypeLTLine, Status: types.FeatureStatusCritical},
	})

	is.Equal(1, len(layers.Group(types.FeatureStatusCritical)))
	is.True(layers.Pulsing("LT-101"))
}
