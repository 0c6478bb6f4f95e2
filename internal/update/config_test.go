package update

import "testing"

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.FocusWorkMinutes != 25 || cfg.FocusBreakMinutes != 5 {
		t.Fatalf("unexpected focus defaults: %+v", cfg)
	}
	if cfg.AgendaWindowDays != 7 || cfg.SchedulerBuffer != 64 {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
	if cfg.DatabasePath != "sereneflow.db" {
		t.Fatalf("unexpected database default: %+v", cfg)
	}
	if cfg.RewardDismissSeconds != 3 {
		t.Fatalf("unexpected dismiss default: %+v", cfg)
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("SERENEFLOW_DB_PATH", "state/flow.db")
	t.Setenv("SERENEFLOW_PROFILE_NAME", "Wanderer")
	t.Setenv("SERENEFLOW_STARTING_SEEDS", "250")
	t.Setenv("SERENEFLOW_FOCUS_WORK_MINUTES", "30")
	t.Setenv("SERENEFLOW_FOCUS_BREAK_MINUTES", "7")
	t.Setenv("SERENEFLOW_AGENDA_WINDOW_DAYS", "14")
	t.Setenv("SERENEFLOW_SCHEDULER_BUFFER", "128")
	t.Setenv("SERENEFLOW_REWARD_DISMISS_SECONDS", "5")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.DatabasePath != "state/flow.db" || cfg.ProfileName != "Wanderer" {
		t.Fatalf("unexpected identity config: %+v", cfg)
	}
	if cfg.StartingSeeds != 250 {
		t.Fatalf("unexpected seed override: %+v", cfg)
	}
	if cfg.FocusWorkMinutes != 30 || cfg.FocusBreakMinutes != 7 {
		t.Fatalf("unexpected focus config: %+v", cfg)
	}
	if cfg.AgendaWindowDays != 14 || cfg.SchedulerBuffer != 128 {
		t.Fatalf("unexpected window config: %+v", cfg)
	}
	if cfg.RewardDismissSeconds != 5 {
		t.Fatalf("unexpected dismiss override: %+v", cfg)
	}
}
