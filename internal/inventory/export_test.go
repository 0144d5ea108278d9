package inventory

import (
	"encoding/csv"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestService_ExportInventoryCSV_Empty(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	path, err := svc.ExportInventoryCSV()
	require.NoError(t, err)
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)

	// header row only on an empty catalog
	require.Len(t, records, 1)
	require.Equal(t, []string{"title", "stock", "price", "threshold"}, records[0])
}

func TestService_ExportInventoryCSV_Snapshot(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	createProduct(t, db, "Berserk Vol. 1", 14.99, 7)
	configured := createProduct(t, db, "Akira Vol. 1", 24.99, 3)
	require.NoError(t, svc.SetProductInventorySettings(configured.ID, SettingsUpdate{
		LowStockThreshold: 2,
		ReorderPoint:      4,
		MaxStockLevel:     20,
	}))

	path, err := svc.ExportInventoryCSV()
	require.NoError(t, err)
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	// rows sorted by title
	require.Equal(t, []string{"Akira Vol. 1", "3", "24.99", "2"}, records[1])
	require.Equal(t, []string{"Berserk Vol. 1", "7", "14.99", "5"}, records[2])
}

func TestService_ExportInventoryCSV_UniquePaths(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	first, err := svc.ExportInventoryCSV()
	require.NoError(t, err)
	defer os.Remove(first)

	second, err := svc.ExportInventoryCSV()
	require.NoError(t, err)
	defer os.Remove(second)

	// concurrent admin exports must never collide
	require.NotEqual(t, first, second)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteInventoryCSV_WriteError(t *testing.T) {
	err := writeInventoryCSV(failingWriter{}, []exportRow{
		{Title: "Berserk Vol. 1", Quantity: 7, Price: 14.99, Threshold: 5},
	})
	require.Error(t, err)
}
