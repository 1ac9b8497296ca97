package di

import (
	"context"
	"errors"
	"testing"

	"github.com/openproblems-bio/pipeline-launcher/internal/launcher"
	"github.com/openproblems-bio/pipeline-launcher/internal/params"
	"github.com/openproblems-bio/pipeline-launcher/internal/services"
	"github.com/rs/zerolog"
	"go.uber.org/dig"
)

// launchPlan is built by a user provider from core values
type launchPlan struct {
	Binary Binary
	Args   []string
}

type staticStore map[string]string

func (s staticStore) GetOverrides(ctx context.Context) (map[string]string, error) {
	return s, nil
}

type failingStore struct{}

func (failingStore) GetOverrides(ctx context.Context) (map[string]string, error) {
	return nil, errors.New("parameter store unavailable")
}

func testContext() context.Context {
	return zerolog.Nop().WithContext(context.Background())
}

func withStore(store services.SettingsStore) Option {
	return WithDecorators(func(services.SettingsStore) services.SettingsStore {
		return store
	})
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr bool
	}{
		{
			name:    "creates container with no options",
			opts:    nil,
			wantErr: false,
		},
		{
			name: "creates container with single provider",
			opts: []Option{
				WithProviders(func() launcher.CommandRunner {
					return launcher.NewExecRunner()
				}),
			},
			wantErr: false,
		},
		{
			name: "creates container with launch options",
			opts: []Option{
				WithDryRun(true),
				WithBinary("tw-dev"),
				WithParamsFile("/work/params.yaml"),
				WithSettingsPath("/launch/batch"),
				WithTokenSecret("launcher/token"),
			},
			wantErr: false,
		},
		{
			name: "rejects provider for a core type",
			opts: []Option{
				WithProviders(func() params.Document { return params.Document{} }),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			container, err := New(testContext(), tt.opts...)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if container == nil && !tt.wantErr {
				t.Error("New() returned nil container without error")
			}
		})
	}
}

func TestNew_InvalidProvider(t *testing.T) {
	// Attempting to provide the same type twice should fail
	_, err := New(testContext(),
		WithProviders(
			func() launcher.CommandRunner {
				return launcher.NewExecRunner()
			},
			func() launcher.CommandRunner {
				return &launcher.ExecRunner{}
			},
		),
	)

	if err == nil {
		t.Error("New() should return error when providing duplicate types")
	}
}

func TestNew_ProvidesOptions(t *testing.T) {
	container, err := New(testContext(), WithBinary("tw-dev"), WithDryRun(true))
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	err = container.Invoke(func(binary Binary, dryRun DryRun, path SettingsPath) {
		if binary != "tw-dev" {
			t.Errorf("Binary = %v, want %v", binary, "tw-dev")
		}
		if !dryRun {
			t.Error("DryRun = false, want true")
		}
		if path != "" {
			t.Errorf("SettingsPath = %v, want empty", path)
		}
	})
	if err != nil {
		t.Fatalf("Invoke() unexpected error: %v", err)
	}
}

func TestNew_DefaultBinary(t *testing.T) {
	container, err := New(testContext())
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	if got := MustGet[Binary](container); got != launcher.DefaultBinary {
		t.Errorf("Binary = %v, want %v", got, launcher.DefaultBinary)
	}
}

func TestNew_DefaultParamsFile(t *testing.T) {
	container, err := New(testContext())
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	if got := MustGet[ParamsFile](container); got != params.DefaultPath {
		t.Errorf("ParamsFile = %v, want %v", got, params.DefaultPath)
	}
}

func TestMustGet(t *testing.T) {
	t.Run("successfully retrieves dependency", func(t *testing.T) {
		runner := launcher.NewExecRunner()
		container, err := New(testContext(),
			WithProviders(func() launcher.CommandRunner {
				return runner
			}),
		)
		if err != nil {
			t.Fatalf("New() unexpected error: %v", err)
		}

		got := MustGet[launcher.CommandRunner](container)
		if got == nil {
			t.Fatal("MustGet() returned nil")
		}
		if got != launcher.CommandRunner(runner) {
			t.Errorf("MustGet() = %v, want the provided runner", got)
		}
	})

	t.Run("panics when dependency not found", func(t *testing.T) {
		container, err := New(testContext())
		if err != nil {
			t.Fatalf("New() unexpected error: %v", err)
		}

		defer func() {
			if r := recover(); r == nil {
				t.Error("MustGet() did not panic")
			}
		}()

		_ = MustGet[launcher.CommandRunner](container)
	})
}

func TestGet_ReturnsProviderError(t *testing.T) {
	container, err := New(testContext(), withStore(failingStore{}))
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	if _, err := Get[launcher.Settings](container); err == nil {
		t.Error("Get() should return error when the settings store fails")
	}
}

func TestDependencyInjection(t *testing.T) {
	t.Run("resolves user providers against core values", func(t *testing.T) {
		container, err := New(testContext(),
			WithBinary("tw-test"),
			withStore(staticStore{}),
			WithProviders(
				func(settings launcher.Settings, binary Binary) launchPlan {
					return launchPlan{Binary: binary, Args: settings.Args()}
				},
			),
		)
		if err != nil {
			t.Fatalf("New() unexpected error: %v", err)
		}

		plan := MustGet[launchPlan](container)
		if plan.Binary != "tw-test" {
			t.Errorf("launchPlan.Binary = %v, want %v", plan.Binary, "tw-test")
		}
		if len(plan.Args) != len(launcher.DefaultSettings().Args()) {
			t.Errorf("launchPlan.Args = %v, want the default argument vector", plan.Args)
		}
	})

	t.Run("default settings without overrides", func(t *testing.T) {
		container, err := New(testContext(), withStore(staticStore{}))
		if err != nil {
			t.Fatalf("New() unexpected error: %v", err)
		}

		got := MustGet[launcher.Settings](container).Args()
		want := launcher.DefaultSettings().Args()
		if len(got) != len(want) {
			t.Fatalf("Args() length = %v, want %v", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Args()[%d] = %v, want %v", i, got[i], want[i])
			}
		}
	})

	t.Run("applies store overrides", func(t *testing.T) {
		container, err := New(testContext(),
			withStore(staticStore{launcher.KeyWorkspace: "999"}),
		)
		if err != nil {
			t.Fatalf("New() unexpected error: %v", err)
		}

		settings := MustGet[launcher.Settings](container)
		if settings.Workspace != "999" {
			t.Errorf("Workspace = %v, want %v", settings.Workspace, "999")
		}
		if settings.ComputeEnv != launcher.DefaultComputeEnv {
			t.Errorf("ComputeEnv = %v, want %v", settings.ComputeEnv, launcher.DefaultComputeEnv)
		}
	})

	t.Run("params file option reaches settings", func(t *testing.T) {
		container, err := New(testContext(), withStore(staticStore{}), WithParamsFile("/work/params.yaml"))
		if err != nil {
			t.Fatalf("New() unexpected error: %v", err)
		}

		if got := MustGet[launcher.Settings](container).ParamsFile; got != "/work/params.yaml" {
			t.Errorf("ParamsFile = %v, want %v", got, "/work/params.yaml")
		}
	})

	t.Run("builds launcher without touching AWS", func(t *testing.T) {
		container, err := New(testContext(), withStore(staticStore{}), WithDryRun(true))
		if err != nil {
			t.Fatalf("New() unexpected error: %v", err)
		}

		l := MustGet[*launcher.Launcher](container)
		if l == nil {
			t.Fatal("MustGet() returned nil launcher")
		}
		if settings := MustGet[launcher.Settings](container); settings.Binary != launcher.DefaultBinary {
			t.Errorf("Binary = %v, want %v", settings.Binary, launcher.DefaultBinary)
		}
		if token := MustGet[AccessToken](container); token != "" {
			t.Errorf("AccessToken = %v, want empty", token)
		}
	})
}

func TestContainer_Interface(t *testing.T) {
	t.Run("implements Container interface", func(t *testing.T) {
		var _ Container = (*dig.Container)(nil)
	})
}
