package statistics

import (
	"math"
	"time"

	"github.com/Trinidad006/CownectWeb-sub000/internal/domain/animals"
	"github.com/Trinidad006/CownectWeb-sub000/internal/domain/records"
)

// Ventanas de recencia en días fijos (no meses de calendario).
const (
	VaccinationWindow = 180 * 24 * time.Hour
	BirthWindow       = 90 * 24 * time.Hour
	MortalityWindow   = 30 * 24 * time.Hour

	DefaultMaxCapacity = 100
)

type Options struct {
	Now         time.Time // zero = time.Now()
	MaxCapacity int       // <= 0 = DefaultMaxCapacity
}

type SexDistribution struct {
	Male      int     `json:"male"`
	Female    int     `json:"female"`
	MalePct   float64 `json:"male_pct"`
	FemalePct float64 `json:"female_pct"`
}

// StageCounts: un animal puede caer en más de un bucket (match por substring).
type StageCounts struct {
	Cria            int `json:"cria"`
	Becerra         int `json:"becerra"`
	Becerro         int `json:"becerro"`
	Destetado       int `json:"destetado"`
	Novillo         int `json:"novillo"`
	ToroEngorda     int `json:"toro_engorda"`
	ToroReproductor int `json:"toro_reproductor"`
	VacaLechera     int `json:"vaca_lechera"`
	VacaSeca        int `json:"vaca_seca"`
}

// StatusCounts no necesariamente suma Total.
type StatusCounts struct {
	Active int `json:"active"`
	Sold   int `json:"sold"`
	Dead   int `json:"dead"`
	Stolen int `json:"stolen"`
}

type InventoryReport struct {
	Total  int             `json:"total"`
	Sex    SexDistribution `json:"sex"`
	Stages StageCounts     `json:"stages"`
	Status StatusCounts    `json:"status"`
}

type SanitaryReport struct {
	VaccinationCoverage float64 `json:"vaccination_coverage"`
	SanitaryAlerts      int     `json:"sanitary_alerts"`
	MonthlyMortality    float64 `json:"monthly_mortality"`
}

type ReproductionReport struct {
	BirthRate      int     `json:"birth_rate"`
	WeaningSuccess float64 `json:"weaning_success"`
}

type AnimalLoad struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

type InfrastructureReport struct {
	OccupancyGeneral float64    `json:"occupancy_general"`
	AnimalLoad       AnimalLoad `json:"animal_load"`
}

type CompleteStatistics struct {
	Inventory      InventoryReport      `json:"inventory"`
	Sanitary       SanitaryReport       `json:"sanitary"`
	Reproduction   ReproductionReport   `json:"reproduction"`
	Infrastructure InfrastructureReport `json:"infrastructure"`
}

// Calculate es puro: no hace I/O y no muta sus entradas.
// weights se acepta pero todavía ningún reporte lo usa.
func Calculate(herd []animals.Animal, vaccinations []records.Vaccination, weights []records.Weight, opts Options) CompleteStatistics {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	capacity := opts.MaxCapacity
	if capacity <= 0 {
		capacity = DefaultMaxCapacity
	}

	return CompleteStatistics{
		Inventory:      inventory(herd),
		Sanitary:       sanitary(herd, vaccinations, now),
		Reproduction:   reproduction(herd, now),
		Infrastructure: infrastructure(herd, capacity),
	}
}

func inventory(herd []animals.Animal) InventoryReport {
	rep := InventoryReport{Total: len(herd)}

	for _, a := range herd {
		switch a.Sex {
		case animals.SexMale:
			rep.Sex.Male++
		case animals.SexFemale:
			rep.Sex.Female++
		}

		st := a.Stage
		inc := func(n *int, label animals.Stage) {
			if st.Matches(label) {
				*n++
			}
		}
		inc(&rep.Stages.Cria, animals.StageCria)
		inc(&rep.Stages.Becerra, animals.StageBecerra)
		inc(&rep.Stages.Becerro, animals.StageBecerro)
		inc(&rep.Stages.Destetado, animals.StageDestetado)
		inc(&rep.Stages.Novillo, animals.StageNovillo)
		inc(&rep.Stages.ToroEngorda, animals.StageToroEngorda)
		inc(&rep.Stages.ToroReproductor, animals.StageToroReproductor)
		inc(&rep.Stages.VacaLechera, animals.StageVacaLechera)
		inc(&rep.Stages.VacaSeca, animals.StageVacaSeca)

		sold := a.SaleStatus == animals.SaleStatusSold
		if sold {
			rep.Status.Sold++
		}
		if st.IsDead() {
			rep.Status.Dead++
		}
		if st.IsStolen() {
			rep.Status.Stolen++
		}
		if !sold && !st.IsDead() && !st.IsStolen() {
			rep.Status.Active++
		}
	}

	rep.Sex.MalePct = percent(rep.Sex.Male, rep.Total)
	rep.Sex.FemalePct = percent(rep.Sex.Female, rep.Total)
	return rep
}

func sanitary(herd []animals.Animal, vaccinations []records.Vaccination, now time.Time) SanitaryReport {
	base := activeBase(herd)
	if len(base) == 0 {
		return SanitaryReport{}
	}

	cutoff := now.Add(-VaccinationWindow)
	vaccinated := make(map[string]struct{})
	for _, v := range vaccinations {
		if !v.ApplicationDate.Before(cutoff) {
			vaccinated[v.AnimalID] = struct{}{}
		}
	}

	covered := 0
	for _, a := range base {
		if _, ok := vaccinated[a.ID]; ok {
			covered++
		}
	}

	// Las bajas recientes no están en la base activa; se cuentan sobre todo el hato.
	mortalityCutoff := now.Add(-MortalityWindow)
	recentDeaths := 0
	for _, a := range herd {
		if a.SaleStatus == animals.SaleStatusSold || !a.Stage.IsDead() {
			continue
		}
		if !a.UpdatedAt.Before(mortalityCutoff) {
			recentDeaths++
		}
	}

	return SanitaryReport{
		VaccinationCoverage: percent(covered, len(base)),
		SanitaryAlerts:      len(base) - covered,
		MonthlyMortality:    percent(recentDeaths, len(base)),
	}
}

func reproduction(herd []animals.Animal, now time.Time) ReproductionReport {
	cutoff := now.Add(-BirthWindow)

	var rep ReproductionReport
	weaned, nursing := 0, 0
	for _, a := range herd {
		if a.BirthDate != nil && !a.BirthDate.Before(cutoff) {
			rep.BirthRate++
		}
		if a.Stage.Matches(animals.StageDestetado) {
			weaned++
		}
		if a.Stage.Matches(animals.StageCria) {
			nursing++
		}
	}
	rep.WeaningSuccess = percent(weaned, weaned+nursing)
	return rep
}

func infrastructure(herd []animals.Animal, capacity int) InfrastructureReport {
	current := len(activeBase(herd))
	return InfrastructureReport{
		// sin tope: la UI recorta la barra a 100
		OccupancyGeneral: percent(current, capacity),
		AnimalLoad:       AnimalLoad{Current: current, Max: capacity},
	}
}

// activeBase: no vendidos y no muertos. Los robados sí cuentan.
func activeBase(herd []animals.Animal) []animals.Animal {
	out := make([]animals.Animal, 0, len(herd))
	for _, a := range herd {
		if a.SaleStatus == animals.SaleStatusSold || a.Stage.IsDead() {
			continue
		}
		out = append(out, a)
	}
	return out
}

func percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return round1(float64(part) / float64(whole) * 100)
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
