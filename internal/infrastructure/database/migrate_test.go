package database

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSchema struct {
	upErr      error
	stepsErr   error
	steps      []int
	version    uint
	dirty      bool
	versionErr error
}

func (f *fakeSchema) Up() error { return f.upErr }

func (f *fakeSchema) Steps(n int) error {
	f.steps = append(f.steps, n)
	return f.stepsErr
}

func (f *fakeSchema) Version() (uint, bool, error) { return f.version, f.dirty, f.versionErr }

func (f *fakeSchema) Close() (error, error) { return nil, nil }

func messages(hook *test.Hook) []string {
	var out []string
	for _, e := range hook.AllEntries() {
		out = append(out, e.Message)
	}
	return out
}

func TestMigrator_LogsEachOutcomeOnce(t *testing.T) {
	tests := []struct {
		name    string
		schema  *fakeSchema
		run     func(mg *Migrator) error
		want    []string
		wantErr bool
	}{
		{name: "up", schema: &fakeSchema{}, run: (*Migrator).Up, want: []string{"Migrations applied"}},
		{name: "up without changes", schema: &fakeSchema{upErr: migrate.ErrNoChange}, run: (*Migrator).Up, want: []string{"No pending migrations"}},
		{name: "up failure", schema: &fakeSchema{upErr: errors.New("syntax error")}, run: (*Migrator).Up, wantErr: true},
		{name: "down", schema: &fakeSchema{}, run: (*Migrator).Down, want: []string{"Rolled back one migration"}},
		{name: "down at base", schema: &fakeSchema{stepsErr: migrate.ErrNoChange}, run: (*Migrator).Down, want: []string{"Nothing to roll back"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, hook := test.NewNullLogger()
			log.SetLevel(logrus.InfoLevel)
			mg := &Migrator{log: log, m: tt.schema}

			err := tt.run(mg)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, hook.AllEntries())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, messages(hook))
		})
	}
}

func TestMigrator_DownRollsBackOneStep(t *testing.T) {
	log, _ := test.NewNullLogger()
	schema := &fakeSchema{}
	mg := &Migrator{log: log, m: schema}

	require.NoError(t, mg.Down())
	assert.Equal(t, []int{-1}, schema.steps)
}

func TestMigrator_Version(t *testing.T) {
	log, _ := test.NewNullLogger()

	version, dirty, err := (&Migrator{log: log, m: &fakeSchema{versionErr: migrate.ErrNilVersion}}).Version()
	require.NoError(t, err)
	assert.Zero(t, version)
	assert.False(t, dirty)

	version, dirty, err = (&Migrator{log: log, m: &fakeSchema{version: 3, dirty: true}}).Version()
	require.NoError(t, err)
	assert.Equal(t, uint(3), version)
	assert.True(t, dirty)
}
