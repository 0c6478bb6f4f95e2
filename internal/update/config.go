package update

import (
	"os"
	"strconv"
	"strings"
)

type RuntimeConfig struct {
	DatabasePath         string
	ProfileName          string
	StartingSeeds        int
	FocusWorkMinutes     int
	FocusBreakMinutes    int
	AgendaWindowDays     int
	SchedulerBuffer      int
	RewardDismissSeconds int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DatabasePath:         "sereneflow.db",
		ProfileName:          "Explorer",
		StartingSeeds:        100,
		FocusWorkMinutes:     25,
		FocusBreakMinutes:    5,
		AgendaWindowDays:     7,
		SchedulerBuffer:      64,
		RewardDismissSeconds: 3,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("SERENEFLOW_DB_PATH")); v != "" {
		cfg.DatabasePath = v
	}
	if v := strings.TrimSpace(os.Getenv("SERENEFLOW_PROFILE_NAME")); v != "" {
		cfg.ProfileName = v
	}
	if v, ok := getEnvInt("SERENEFLOW_STARTING_SEEDS"); ok && v >= 0 {
		cfg.StartingSeeds = v
	}
	if v, ok := getEnvInt("SERENEFLOW_FOCUS_WORK_MINUTES"); ok && v > 0 {
		cfg.FocusWorkMinutes = v
	}
	if v, ok := getEnvInt("SERENEFLOW_FOCUS_BREAK_MINUTES"); ok && v > 0 {
		cfg.FocusBreakMinutes = v
	}
	if v, ok := getEnvInt("SERENEFLOW_AGENDA_WINDOW_DAYS"); ok && v > 0 {
		cfg.AgendaWindowDays = v
	}
	if v, ok := getEnvInt("SERENEFLOW_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvInt("SERENEFLOW_REWARD_DISMISS_SECONDS"); ok && v > 0 {
		cfg.RewardDismissSeconds = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
