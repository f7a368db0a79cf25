package setting

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/AppShell-Admin/AppShell-Admin/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	// every pooled connection would get its own in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.Setting{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// seedSettings inserts test data into the database.
func seedSettings(t *testing.T, db *gorm.DB, settings []models.Setting) {
	t.Helper()

	for _, setting := range settings {
		err := db.Create(&setting).Error
		require.NoError(t, err, "failed to seed test data")
	}
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		key           string
		seedData      []models.Setting
		expectedError error
		expectedValue []byte
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			key:           "theme",
			expectedError: ErrDBNil,
		},
		{
			name:          "empty key",
			dbParam:       db,
			key:           "",
			expectedError: ErrSettingKeyEmpty,
		},
		{
			name:          "setting not found",
			dbParam:       db,
			key:           "nonexistent",
			expectedError: ErrSettingNotFound,
		},
		{
			name:    "successful get",
			dbParam: db,
			key:     "theme",
			seedData: []models.Setting{
				{Key: "theme", Value: []byte(`{"primary_color":"#000000"}`)},
			},
			expectedValue: []byte(`{"primary_color":"#000000"}`),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM settings")
			}

			if tc.seedData != nil {
				seedSettings(t, tc.dbParam, tc.seedData)
			}

			setting, err := Get(ctx, tc.dbParam, tc.key)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, setting)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.key, setting.Key)
			assert.Equal(t, tc.expectedValue, setting.Value)
		})
	}
}

func TestGetAll(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	_, err := GetAll(ctx, nil)
	require.ErrorIs(t, err, ErrDBNil)

	all, err := GetAll(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, all)

	seedSettings(t, db, []models.Setting{
		{Key: "theme", Value: []byte(`{}`)},
		{Key: "splash", Value: []byte(`{"enabled":true}`)},
		{Key: "admob", Value: []byte(`{"enabled":false}`)},
	})

	all, err = GetAll(ctx, db)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, []byte(`{"enabled":true}`), all["splash"])
}

func TestSet(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	_, err := Set(ctx, nil, "theme", nil)
	require.ErrorIs(t, err, ErrDBNil)

	_, err = Set(ctx, db, "", []byte("{}"))
	require.ErrorIs(t, err, ErrSettingKeyEmpty)

	// create
	_, err = Set(ctx, db, "theme", []byte(`{"dark_mode":false}`))
	require.NoError(t, err)

	// overwrite, never a second row
	_, err = Set(ctx, db, "theme", []byte(`{"dark_mode":true}`))
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Setting{}).Where("setting_key = ?", "theme").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := Get(ctx, db, "theme")
	require.NoError(t, err)
	assert.JSONEq(t, `{"dark_mode":true}`, string(got.Value))
}

func TestDeleteByKey(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	require.ErrorIs(t, DeleteByKey(ctx, nil, "theme"), ErrDBNil)
	require.ErrorIs(t, DeleteByKey(ctx, db, ""), ErrSettingKeyEmpty)
	require.ErrorIs(t, DeleteByKey(ctx, db, "theme"), ErrSettingNotFound)

	seedSettings(t, db, []models.Setting{{Key: "theme", Value: []byte(`{}`)}})

	require.NoError(t, DeleteByKey(ctx, db, "theme"))

	_, err := Get(ctx, db, "theme")
	require.ErrorIs(t, err, ErrSettingNotFound)
}

type themeSection struct {
	PrimaryColor string `json:"primary_color"`
	DarkMode     bool   `json:"dark_mode"`
}

func TestStore_LoadSave(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t))

	// missing key keeps the default
	theme := themeSection{PrimaryColor: "#ffffff"}
	require.NoError(t, store.Load(ctx, "theme", &theme))
	assert.Equal(t, "#ffffff", theme.PrimaryColor)

	require.NoError(t, store.Save(ctx, "theme", themeSection{PrimaryColor: "#123456", DarkMode: true}))

	var loaded themeSection
	require.NoError(t, store.Load(ctx, "theme", &loaded))
	assert.Equal(t, themeSection{PrimaryColor: "#123456", DarkMode: true}, loaded)

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"primary_color":"#123456","dark_mode":true}`, string(all["theme"]))
}

func TestStore_Errors(t *testing.T) {
	ctx := context.Background()

	// storage failures surface, they never fall back to the default
	store := NewStore(nil)
	require.ErrorIs(t, store.Load(ctx, "theme", &themeSection{}), ErrDBNil)
	require.ErrorIs(t, store.Save(ctx, "theme", themeSection{}), ErrDBNil)

	// values that cannot be encoded are rejected before touching the database
	require.Error(t, NewStore(setupTestDB(t)).Save(ctx, "broken", map[string]any{"fn": func() {}}))

	// corrupt blobs are reported
	db := setupTestDB(t)
	seedSettings(t, db, []models.Setting{{Key: "theme", Value: []byte(`{not json`)}})
	require.Error(t, NewStore(db).Load(ctx, "theme", &themeSection{}))
}
