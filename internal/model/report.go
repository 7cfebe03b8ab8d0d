package model

import "time"

// queue structures available for a simulation run
const (
	StructureList = "lista"
	StructureHeap = "prioridade"
)

// sort algorithms available for ordering arrivals
const (
	AlgorithmMerge = "merge"
	AlgorithmQuick = "quick"
)

// reordering rules of the list structure
const (
	ReorderByPriority = "por_prioridade"
	ReorderByArrival  = "por_chegada"
)

// RunParams are parameters of a single simulation run
type RunParams struct {
	Structure   string
	Algorithm   string
	ReorderRule string
	RecordUndo  bool
}

// Statistics are the aggregate numbers of a simulation run. Field names
// follow the report vocabulary of the service, they are rendered to clients
// as-is.
type Statistics struct {
	Served           int     `json:"n_atendidos" bson:"n_atendidos"`
	TotalWait        float64 `json:"tempo_total_espera" bson:"tempo_total_espera"`
	MeanWait         float64 `json:"tempo_medio_espera" bson:"tempo_medio_espera"`
	TotalServiceTime float64 `json:"tempo_total_atendimento" bson:"tempo_total_atendimento"`
	Structure        string  `json:"estrutura" bson:"estrutura"`
	Algorithm        string  `json:"algoritmo_ordenacao" bson:"algoritmo_ordenacao"`
	ReorderRule      string  `json:"regra_reordenacao" bson:"regra_reordenacao"`
	ComplexityHint   string  `json:"complexidade_media_ord" bson:"complexidade_media_ord"`
}

// Report is the persisted outcome of a simulation run. UndoRecorded marks
// whether the run recorded its services for undoing, services of a run that
// did not cannot be undone.
type Report struct {
	ID           string           `json:"id"`
	GeneratedAt  time.Time        `json:"gerado_em"`
	Statistics   Statistics       `json:"estatisticas"`
	Served       []ServedCustomer `json:"atendidos"`
	UndoRecorded bool             `json:"registro_desfazer"`
}

// TopWaits returns up to n served customers with the longest waits,
// longest first
func (r *Report) TopWaits(n int) []ServedCustomer {
	top := make([]ServedCustomer, len(r.Served))
	copy(top, r.Served)

	for i := 1; i < len(top); i++ {
		for j := i; j > 0 && top[j].Wait() > top[j-1].Wait(); j-- {
			top[j], top[j-1] = top[j-1], top[j]
		}
	}

	if len(top) > n {
		top = top[:n]
	}
	return top
}
