package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-care/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func fixtures() Collections {
	return Collections{
		Equipment: []models.Equipment{
			{Tag: "EXCAVADORA-001", UnitType: models.UnitHours},
			{Tag: "CAMINHAO-0001 (KM)"},
			{Tag: "TRATOR-7", UnitType: models.UnitHours},
		},
		Maintenance: []models.MaintenanceRecord{
			{ID: primitive.NewObjectID(), EquipmentTag: "EXCAVADORA-001", Kind: models.KindPreventive},
			{ID: primitive.NewObjectID(), EquipmentTag: "TRATOR-7", Kind: models.KindCorrective},
		},
		Suppliers: []models.Supplier{
			{ID: primitive.NewObjectID(), Name: "Hidraulica Norte", Specialty: "Hydraulics"},
			{ID: primitive.NewObjectID(), Name: "Pecas Excavadora Ltda", Specialty: "Parts"},
		},
	}
}

func TestSearch_GroupsInOrder(t *testing.T) {
	c := fixtures()

	results := Search("exca", c)

	require.Len(t, results, 3)
	assert.Equal(t, Result{Kind: KindEquipment, Title: "EXCAVADORA-001", Subtitle: "HOURS", SourceID: "EXCAVADORA-001"}, results[0])
	assert.Equal(t, KindMaintenance, results[1].Kind)
	assert.Equal(t, c.Maintenance[0].ID.Hex(), results[1].SourceID)
	assert.Equal(t, "PREVENTIVE", results[1].Subtitle)
	assert.Equal(t, KindSupplier, results[2].Kind)
	assert.Equal(t, "Pecas Excavadora Ltda", results[2].Title)
	assert.Equal(t, c.Suppliers[1].ID.Hex(), results[2].SourceID)
}

func TestSearch_CaseInsensitive(t *testing.T) {
	lower := Search("hydraulics", fixtures())
	upper := Search("HYDRAULICS", fixtures())

	require.Len(t, lower, 1)
	assert.Equal(t, "Hidraulica Norte", lower[0].Title)
	assert.Len(t, upper, 1)
}

func TestSearch_SecondaryFields(t *testing.T) {
	t.Run("equipment unit label", func(t *testing.T) {
		results := Search("distance", fixtures())
		require.Len(t, results, 1)
		assert.Equal(t, "CAMINHAO-0001 (KM)", results[0].Title)
		assert.Equal(t, "DISTANCE", results[0].Subtitle)
	})

	t.Run("maintenance kind", func(t *testing.T) {
		results := Search("corrective", fixtures())
		require.Len(t, results, 1)
		assert.Equal(t, KindMaintenance, results[0].Kind)
		assert.Equal(t, "TRATOR-7", results[0].Title)
	})

	t.Run("supplier specialty", func(t *testing.T) {
		results := Search("parts", fixtures())
		require.Len(t, results, 1)
		assert.Equal(t, KindSupplier, results[0].Kind)
	})
}

func TestSearch_EquipmentInputOrder(t *testing.T) {
	results := Search("-", fixtures())

	var equipment []string
	for _, r := range results {
		if r.Kind == KindEquipment {
			equipment = append(equipment, r.Title)
		}
	}
	assert.Equal(t, []string{"EXCAVADORA-001", "CAMINHAO-0001 (KM)", "TRATOR-7"}, equipment)
}

func TestSearch_EmptyQuery(t *testing.T) {
	for _, q := range []string{"", "   "} {
		results := Search(q, fixtures())
		assert.NotNil(t, results)
		assert.Empty(t, results)
	}
}

func TestSearch_NoMatch(t *testing.T) {
	results := Search("zzz", fixtures())
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearch_MissingCollections(t *testing.T) {
	c := fixtures()
	c.Maintenance = nil
	c.Suppliers = nil

	results := Search("exca", c)

	require.Len(t, results, 1)
	assert.Equal(t, KindEquipment, results[0].Kind)
}
