package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mapwise/capmap/internal/domain"
	"github.com/mapwise/capmap/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const saasTemplate = `{
	"id": "saas-baseline",
	"name": "SaaS Baseline",
	"description": "Starter categories for a SaaS capability map",
	"categories": [
		{
			"name": "Customer Management",
			"capabilities": [
				{"name": "Onboarding", "size": "m", "phase": "phase1"},
				{"name": "Self-Service Portal", "size": "l"}
			]
		},
		{
			"name": "Billing",
			"capabilities": [
				{"name": "Invoicing", "size": "xl", "phase": "phase2", "color": "#2DA44E"}
			]
		}
	]
}`

func writeTemplate(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func newTemplateEnv(t *testing.T) (*testEnv, TemplateService, string) {
	t.Helper()
	env := newTestEnv(t)
	dir := t.TempDir()
	svc := NewTemplateService(dir, env.Maps, env.CatRepo, testutil.NewTestUoW(env.DB))
	return env, svc, dir
}

func TestTemplateService_List(t *testing.T) {
	_, svc, dir := newTemplateEnv(t)
	writeTemplate(t, dir, "saas.json", saasTemplate)

	templates, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "saas-baseline", templates[0].ID)
	assert.Equal(t, "SaaS Baseline", templates[0].Name)
}

func TestTemplateService_ListMissingDir(t *testing.T) {
	env := newTestEnv(t)
	svc := NewTemplateService("/no/such/dir", env.Maps, env.CatRepo, testutil.NewTestUoW(env.DB))
	templates, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, templates)
}

func TestTemplateService_Apply(t *testing.T) {
	env, svc, dir := newTemplateEnv(t)
	writeTemplate(t, dir, "saas.json", saasTemplate)
	m, _ := seedBoard(t, env, testutil.WithSizeHours(map[domain.Size]int{
		domain.SizeM: 16, domain.SizeL: 24, domain.SizeXL: 32,
	}))
	ctx := context.Background()

	data, err := svc.Apply(ctx, m.ID, "saas-baseline")
	require.NoError(t, err)

	// Seeded "Core" plus two generated categories, appended after it.
	require.Len(t, data.Categories, 3)
	assert.Equal(t, "Core", data.Categories[0].Name)
	assert.Equal(t, "Customer Management", data.Categories[1].Name)
	assert.Equal(t, "Billing", data.Categories[2].Name)

	require.Len(t, data.Capabilities, 3)
	byName := map[string]*domain.Capability{}
	for _, c := range data.Capabilities {
		byName[c.Name] = c
	}
	assert.Equal(t, 32, byName["Invoicing"].Hours, "hours from the map's config")
	assert.Equal(t, "#2da44e", byName["Invoicing"].Color, "template color normalized")
	assert.Equal(t, domain.Phase1, byName["Onboarding"].Phase)

	require.Len(t, data.AppliedTemplates, 1)
	assert.Equal(t, "saas-baseline", data.AppliedTemplates[0].TemplateID)
}

func TestTemplateService_ApplyResolvesByFileStem(t *testing.T) {
	env, svc, dir := newTemplateEnv(t)
	writeTemplate(t, dir, "saas.json", saasTemplate)
	m, _ := seedBoard(t, env)

	_, err := svc.Apply(context.Background(), m.ID, "saas")
	assert.NoError(t, err)
}

func TestTemplateService_ApplyUnknownTemplate(t *testing.T) {
	env, svc, _ := newTemplateEnv(t)
	m, _ := seedBoard(t, env)

	_, err := svc.Apply(context.Background(), m.ID, "nope")
	assert.Error(t, err)
}

func TestTemplateService_ApplyRollsBackOnFailure(t *testing.T) {
	env := newTestEnv(t)
	dir := t.TempDir()
	writeTemplate(t, dir, "saas.json", saasTemplate)
	m, _ := seedBoard(t, env)
	ctx := context.Background()

	// Fail on the third insert inside the transaction: nothing from the
	// template may survive.
	uow := &testutil.FailOnNthExecUoW{DB: env.DB, FailOn: 3, Err: errors.New("disk full")}
	svc := NewTemplateService(dir, env.Maps, env.CatRepo, uow)

	_, err := svc.Apply(ctx, m.ID, "saas-baseline")
	require.Error(t, err)

	cats, err := env.CatRepo.ListByMap(ctx, m.ID)
	require.NoError(t, err)
	assert.Len(t, cats, 1, "only the seeded category remains")
	caps, err := env.CapRepo.ListByMap(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, caps)
}
