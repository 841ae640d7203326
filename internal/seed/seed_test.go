package seed

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/backoffice/internal/model"
)

type memTable[T any] struct {
	rows    []*T
	setID   func(*T, uint64)
	preset  int64
	failing error
}

func (m *memTable[T]) Count(context.Context) (int64, error) {
	return m.preset + int64(len(m.rows)), nil
}

func (m *memTable[T]) Create(_ context.Context, v *T) error {
	if m.failing != nil {
		return m.failing
	}
	m.rows = append(m.rows, v)
	if m.setID != nil {
		m.setID(v, uint64(len(m.rows)))
	}
	return nil
}

type memFiles struct {
	memTable[model.FileUpload]
	updates int
}

func (m *memFiles) Update(context.Context, *model.FileUpload) error {
	m.updates++
	return nil
}

type memPermissions struct{ memTable[model.Permission] }

func (m *memPermissions) ListAll(context.Context) ([]model.Permission, error) {
	out := make([]model.Permission, len(m.rows))
	for i, p := range m.rows {
		out[i] = *p
	}
	return out, nil
}

type memProfiles struct {
	memTable[model.Profile]
	grants map[uint64][]uint64
}

func (m *memProfiles) SetPermissions(_ context.Context, id uint64, ids []uint64) error {
	m.grants[id] = ids
	return nil
}

type memUsers struct {
	memTable[model.User]
	profiles map[uint64][]uint64
}

func (m *memUsers) SetProfiles(_ context.Context, id uint64, ids []uint64) error {
	m.profiles[id] = ids
	return nil
}

type fixture struct {
	seeder   *Seeder
	products *memTable[model.Product]
	contents *memTable[model.Content]
	files    *memFiles
	perms    *memPermissions
	profiles *memProfiles
	users    *memUsers
}

func newFixture() *fixture {
	f := &fixture{
		products: &memTable[model.Product]{},
		contents: &memTable[model.Content]{},
		files:    &memFiles{},
		perms:    &memPermissions{memTable[model.Permission]{setID: func(p *model.Permission, id uint64) { p.ID = id }}},
		profiles: &memProfiles{
			memTable: memTable[model.Profile]{setID: func(p *model.Profile, id uint64) { p.ID = id }},
			grants:   map[uint64][]uint64{},
		},
		users: &memUsers{
			memTable: memTable[model.User]{setID: func(u *model.User, id uint64) { u.ID = id }},
			profiles: map[uint64][]uint64{},
		},
	}
	f.seeder = &Seeder{
		products:    f.products,
		contents:    f.contents,
		files:       f.files,
		permissions: f.perms,
		profiles:    f.profiles,
		users:       f.users,
		log:         zap.NewNop(),
	}
	return f
}

func TestRunSeedsEmptyTables(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.seeder.Run(context.Background()))

	assert.Len(t, f.products.rows, 40)
	assert.Len(t, f.contents.rows, 20)
	assert.Len(t, f.files.rows, 4)
	assert.Len(t, f.perms.rows, 22)
	assert.Len(t, f.profiles.rows, 2)
	require.Len(t, f.users.rows, 1)

	first := f.products.rows[0]
	assert.Equal(t, "Laptop Dell XPS 15", first.Name)
	assert.Equal(t, int64(129999), first.PriceCents)
	assert.InDelta(t, 1299.99, first.Price, 0.001)

	assert.Equal(t, "Mario Rossi", f.contents.rows[0].CustomMetadata["Autore"])

	// only the uploads with text get the second write
	assert.Equal(t, 3, f.files.updates)
	for _, up := range f.files.rows {
		assert.True(t, strings.HasSuffix(up.UniqueFileName, strings.ToLower(up.FileName[strings.LastIndex(up.FileName, "."):])))
		assert.Len(t, up.ETag, 64)
		assert.True(t, up.Status.Valid())
	}

	admin := f.profiles.rows[0]
	assert.Equal(t, AdminProfile, admin.Name)
	assert.Len(t, f.profiles.grants[admin.ID], 22)
	operator := f.profiles.rows[1]
	assert.Len(t, f.profiles.grants[operator.ID], 4)

	u := f.users.rows[0]
	assert.Equal(t, AdminUsername, u.Username)
	assert.Equal(t, []uint64{admin.ID}, f.users.profiles[u.ID])
}

func TestRunLeavesPopulatedTablesAlone(t *testing.T) {
	f := newFixture()
	f.products.preset = 3
	f.profiles.preset = 1
	f.users.preset = 1

	require.NoError(t, f.seeder.Run(context.Background()))

	assert.Empty(t, f.products.rows)
	assert.Empty(t, f.profiles.rows)
	assert.Empty(t, f.users.rows)
	assert.Len(t, f.contents.rows, 20)
	assert.Len(t, f.perms.rows, 22)
}

func TestRunAdminWithoutSeededProfiles(t *testing.T) {
	f := newFixture()
	f.profiles.preset = 2

	require.NoError(t, f.seeder.Run(context.Background()))

	require.Len(t, f.users.rows, 1)
	assert.Empty(t, f.users.profiles)
}

func TestRunStopsOnError(t *testing.T) {
	f := newFixture()
	boom := errors.New("boom")
	f.contents.failing = boom

	err := f.seeder.Run(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "seed contents")
	assert.Len(t, f.products.rows, 40)
	assert.Empty(t, f.files.rows)
}

func TestDemoPermissionNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range demoPermissions {
		assert.False(t, seen[p.name], p.name)
		seen[p.name] = true
	}
	assert.True(t, seen["SYSTEM_ADMIN"])
}
