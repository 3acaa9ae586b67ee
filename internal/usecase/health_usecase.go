package usecase

import (
	"context"
	"sort"
	"time"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

// HealthProbe reports whether one backing service is reachable.
type HealthProbe func(ctx context.Context) error

type healthUsecase struct {
	probes map[string]HealthProbe
}

func NewHealthUsecase(probes map[string]HealthProbe) HealthUsecase {
	return &healthUsecase{probes: probes}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result := map[string]string{"status": "ok"}
	names := make([]string, 0, len(u.probes))
	for name := range u.probes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := u.probes[name](ctx); err != nil {
			result[name] = "down"
			result["status"] = "degraded"
			continue
		}
		result[name] = "up"
	}
	return result
}
