package buildsystem_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/pax/internal/engine/buildsystem"
)

func taskByName(t *testing.T, plan *buildsystem.Plan, name string) domain.Task {
	t.Helper()
	for _, task := range plan.Tasks {
		if task.Name.String() == name {
			return task
		}
	}
	require.FailNow(t, "task not planned", name)
	return domain.Task{}
}

func TestPlanBuild_Tasks(t *testing.T) {
	params := testParams(t, "/build/"+linuxTriple)
	plan, err := buildsystem.PlanBuild(appGraph(t), params)
	require.NoError(t, err)

	var got []string
	for _, task := range plan.Tasks {
		got = append(got, task.Name.String())
	}
	assert.ElementsMatch(t, []string{
		"compile:core/Core",
		"archive:core/Core",
		"compile:app/App",
		"compile:app/AppTests",
		"link:app/app",
		"link:app/AppPackageTests",
	}, got)

	compile := taskByName(t, plan, "compile:app/App")
	assert.Equal(t, domain.TaskCompile, compile.Kind)
	assert.Equal(t, []string{"compile:core/Core"}, domain.Strings(compile.Dependencies))
	assert.Equal(t, []string{"/src/app/Sources/App/main.src"}, domain.Strings(compile.Inputs))
	assert.Equal(t, []string{"/build/" + linuxTriple + "/debug/app.build/App.o"}, domain.Strings(compile.Outputs))
	assert.Subset(t, compile.Command, []string{"-target", linuxTriple, "-Onone", "-g"})
	assert.Equal(t, "/opt/pax/usr/bin/paxc", compile.Command[0])

	archive := taskByName(t, plan, "archive:core/Core")
	assert.Equal(t, []string{"/opt/pax/usr/bin/ar", "rcs",
		"/build/" + linuxTriple + "/debug/core.build/libCore.a",
		"/build/" + linuxTriple + "/debug/core.build/Core.o"}, archive.Command)

	link := taskByName(t, plan, "link:app/app")
	assert.Equal(t, []string{"compile:core/Core", "compile:app/App"}, domain.Strings(link.Dependencies))
	assert.Equal(t, []string{"/build/" + linuxTriple + "/debug/app"}, domain.Strings(link.Outputs))

	tests := taskByName(t, plan, "link:app/AppPackageTests")
	assert.Equal(t, []string{"compile:core/Core", "compile:app/App", "compile:app/AppTests"}, domain.Strings(tests.Dependencies))

	assert.Equal(t, "link:app/app", plan.Description.Products["app"])
	assert.Equal(t, "archive:core/Core", plan.Description.Products["CoreLib"])
	assert.Equal(t, "compile:app/App", plan.Description.Targets["App"])
	assert.ElementsMatch(t, []string{"compile:app/AppTests", "link:app/AppPackageTests"}, plan.Description.TestTasks)
}

func TestPlanBuild_FeatureFlags(t *testing.T) {
	params := testParams(t, "/build")
	params.Configuration = domain.ConfigurationRelease
	params.Features = domain.BuildFeatures{
		StaticStdlib: true,
		Sanitizers:   []domain.Sanitizer{domain.SanitizerAddress},
		CodeCoverage: true,
		IndexStore:   domain.IndexStoreOn,
	}
	params.Flags.LinkerFlags = []string{"-rpath=/opt"}

	plan, err := buildsystem.PlanBuild(appGraph(t), params)
	require.NoError(t, err)

	compile := taskByName(t, plan, "compile:app/App")
	assert.Contains(t, compile.Command, "-O")
	assert.NotContains(t, compile.Command, "-Onone")
	assert.Contains(t, compile.Command, "-fsanitize=address")
	assert.Contains(t, compile.Command, "-profile-generate")
	assert.Contains(t, compile.Command, "-index-store-path")

	link := taskByName(t, plan, "link:app/app")
	assert.Contains(t, link.Command, "-static-stdlib")
	assert.Subset(t, link.Command, []string{"-Xlinker", "-rpath=/opt"})
}

func crossGraph(t *testing.T) *domain.PackageGraph {
	t.Helper()
	g := domain.NewPackageGraph()
	require.NoError(t, g.AddPackage(&domain.ResolvedPackage{
		Identity: "firmware",
		Path:     "/src/firmware",
		IsRoot:   true,
		Manifest: &domain.Manifest{
			Name:     "Firmware",
			Targets:  []domain.Target{{Name: "Main", Kind: domain.TargetExecutable, Sources: []string{"main.src"}}},
			Products: []domain.Product{{Name: "firmware", Kind: domain.ProductCrossApplication, Targets: []string{"Main"}}},
		},
	}))
	require.NoError(t, g.Validate())
	return g
}

func TestPlanBuild_CrossApplication(t *testing.T) {
	params := testParams(t, "/build")
	params.Toolchain.Destination.Cross = &domain.CrossToolchain{
		Root:          "/opt/cross",
		SpecsFile:     "/opt/cross/specs",
		LinkerBinPath: "/opt/cross/bin",
		IsCross:       true,
	}

	plan, err := buildsystem.PlanBuild(crossGraph(t), params)
	require.NoError(t, err)

	link := taskByName(t, plan, "link:firmware/firmware")
	count := func(arg string) int {
		n := 0
		for _, a := range link.Command {
			if a == arg {
				n++
			}
		}
		return n
	}
	assert.Equal(t, 1, count("-static-executable"))
	assert.Equal(t, 1, count("-use-ld=/opt/cross/bin/ld.gold"))

	pack := taskByName(t, plan, "package:firmware/firmware")
	assert.Equal(t, domain.TaskPackage, pack.Kind)
	assert.Equal(t, []string{"link:firmware/firmware"}, domain.Strings(pack.Dependencies))
	assert.Equal(t, []string{"/build/debug/firmware" + buildsystem.PackagedExtension}, domain.Strings(pack.Outputs))
	assert.Equal(t, "package:firmware/firmware", plan.Description.Products["firmware"])
}

func TestPlanBuild_CrossApplicationNeedsCrossToolchain(t *testing.T) {
	_, err := buildsystem.PlanBuild(crossGraph(t), testParams(t, "/build"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedProductKind)
}

func TestPlanBuild_TargetCycle(t *testing.T) {
	g := domain.NewPackageGraph()
	require.NoError(t, g.AddPackage(&domain.ResolvedPackage{
		Identity: "loop",
		Path:     "/src/loop",
		IsRoot:   true,
		Manifest: &domain.Manifest{Targets: []domain.Target{
			{Name: "A", Dependencies: []string{"B"}},
			{Name: "B", Dependencies: []string{"A"}},
		}},
	}))
	require.NoError(t, g.Validate())

	_, err := buildsystem.PlanBuild(g, testParams(t, "/build"))
	assert.ErrorIs(t, err, domain.ErrCycleDetected)
}

func TestPlan_Select(t *testing.T) {
	plan, err := buildsystem.PlanBuild(appGraph(t), testParams(t, "/build"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		subset domain.BuildSubset
		want   []string
	}{
		{
			name:   "all excluding tests",
			subset: domain.BuildSubset{Kind: domain.SubsetAllExcludingTests},
			want:   []string{"compile:core/Core", "archive:core/Core", "compile:app/App", "link:app/app"},
		},
		{
			name:   "all including tests",
			subset: domain.BuildSubset{Kind: domain.SubsetAllIncludingTests},
			want: []string{"compile:core/Core", "archive:core/Core", "compile:app/App", "link:app/app",
				"compile:app/AppTests", "link:app/AppPackageTests"},
		},
		{
			name:   "product",
			subset: domain.BuildSubset{Kind: domain.SubsetProduct, Name: "app"},
			want:   []string{"compile:core/Core", "compile:app/App", "link:app/app"},
		},
		{
			name:   "target",
			subset: domain.BuildSubset{Kind: domain.SubsetTarget, Name: "Core"},
			want:   []string{"compile:core/Core"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := plan.Select(tt.subset)
			require.NoError(t, err)

			var got []string
			for task := range g.Walk() {
				got = append(got, task.Name.String())
			}
			assert.ElementsMatch(t, tt.want, got)
			assert.True(t, slices.Index(got, "compile:core/Core") <= 0, "dependencies come first")
		})
	}
}

func TestPlan_SelectUnknown(t *testing.T) {
	plan, err := buildsystem.PlanBuild(appGraph(t), testParams(t, "/build"))
	require.NoError(t, err)

	_, err = plan.Select(domain.BuildSubset{Kind: domain.SubsetProduct, Name: "missing"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = plan.Select(domain.BuildSubset{Kind: domain.SubsetTarget, Name: "missing"})
	assert.ErrorIs(t, err, domain.ErrTargetNotFound)
}

func TestPlan_SelectMissingDependency(t *testing.T) {
	plan := &buildsystem.Plan{
		Tasks: []domain.Task{{
			Name:         domain.NewInternedString("link:app/app"),
			Kind:         domain.TaskLink,
			Dependencies: domain.NewInternedStrings([]string{"compile:app/App"}),
		}},
		Description: buildsystem.Description{Products: map[string]string{"app": "link:app/app"}},
	}

	_, err := plan.Select(domain.BuildSubset{Kind: domain.SubsetProduct, Name: "app"})
	require.ErrorIs(t, err, domain.ErrMissingDependency)
}

func TestPlanBuild_Archs(t *testing.T) {
	params := testParams(t, "/build")
	params.Archs = []string{"x86_64", "arm64"}

	plan, err := buildsystem.PlanBuild(appGraph(t), params)
	require.NoError(t, err)

	want := []string{"-arch", "x86_64", "-arch", "arm64"}
	compile := taskByName(t, plan, "compile:app/App")
	assert.Positive(t, indexOfRun(compile.Command, want))
	link := taskByName(t, plan, "link:app/app")
	assert.Positive(t, indexOfRun(link.Command, want))

	plain, err := buildsystem.PlanBuild(appGraph(t), testParams(t, "/build"))
	require.NoError(t, err)
	assert.NotContains(t, taskByName(t, plain, "compile:app/App").Command, "-arch")
}

// indexOfRun returns the position of run as a contiguous slice of s, or -1.
func indexOfRun(s, run []string) int {
	for i := 0; i+len(run) <= len(s); i++ {
		if slices.Equal(s[i:i+len(run)], run) {
			return i
		}
	}
	return -1
}

func TestSavePlan_LoadPlan(t *testing.T) {
	params := testParams(t, t.TempDir())
	plan, err := buildsystem.PlanBuild(appGraph(t), params)
	require.NoError(t, err)

	require.NoError(t, buildsystem.SavePlan(params, plan))
	require.True(t, buildsystem.PlanExists(params))

	loaded, err := buildsystem.LoadPlan(params)
	require.NoError(t, err)
	assert.Equal(t, plan.Description, loaded.Description)
	require.Len(t, loaded.Tasks, len(plan.Tasks))

	for i, want := range plan.Tasks {
		got := loaded.Tasks[i]
		assert.Equal(t, want.Name.String(), got.Name.String())
		assert.Equal(t, want.Kind, got.Kind)
		assert.Equal(t, want.Command, got.Command)
		assert.Equal(t, want.WorkingDir.String(), got.WorkingDir.String(), want.Name.String())
		assert.Equal(t, domain.Strings(want.Inputs), domain.Strings(got.Inputs))
		assert.Equal(t, domain.Strings(want.Outputs), domain.Strings(got.Outputs))
		assert.Equal(t, domain.Strings(want.Dependencies), domain.Strings(got.Dependencies))
	}
	assert.Equal(t, "/src/app", taskByName(t, loaded, "compile:app/App").WorkingDir.String())
}
