// Package simulation runs the service-queue simulation: customers arrive at
// known minutes, wait in the configured queue structure and are served one
// at a time by a single attendant.
package simulation

import (
	"time"

	"github.com/google/uuid"
	"github.com/rmaciel/atendimento/internal/model"
	"github.com/rmaciel/atendimento/internal/queue"
)

// Run simulates serving all provided customers and returns the produced
// report. The clock starts at minute 0 and jumps forward to the next arrival
// whenever the queue runs empty.
func Run(customers []model.Customer, params model.RunParams, now time.Time) model.Report {
	arrivals := queue.Sort(customers, params.Algorithm, queue.ByArrival)
	waiting := queue.New(params.Structure)

	served := make([]model.ServedCustomer, 0, len(arrivals))
	currentTime := 0.0
	next := 0

	for next < len(arrivals) || waiting.Len() > 0 {
		if waiting.Len() == 0 && next < len(arrivals) && arrivals[next].Arrival > currentTime {
			currentTime = arrivals[next].Arrival
		}

		for next < len(arrivals) && arrivals[next].Arrival <= currentTime {
			waiting.Push(arrivals[next])
			next++
		}

		c, ok := waiting.Pop()
		if !ok {
			continue
		}

		start := currentTime
		if c.Arrival > start {
			start = c.Arrival
		}

		sc := model.ServedCustomer{
			Customer:     c,
			ServiceStart: start,
			ServiceEnd:   start + c.ServiceTime,
		}
		currentTime = sc.ServiceEnd
		served = append(served, sc)

		// customers arriving while this one was served join the queue
		// before the next pick
		for next < len(arrivals) && arrivals[next].Arrival <= currentTime {
			waiting.Push(arrivals[next])
			next++
		}
	}

	return model.Report{
		ID:           uuid.NewString(),
		GeneratedAt:  now,
		Statistics:   statistics(served, params),
		Served:       served,
		UndoRecorded: params.RecordUndo,
	}
}

func statistics(served []model.ServedCustomer, params model.RunParams) model.Statistics {
	stats := model.Statistics{
		Served:         len(served),
		Structure:      params.Structure,
		Algorithm:      params.Algorithm,
		ReorderRule:    params.ReorderRule,
		ComplexityHint: queue.ComplexityHint(params.Algorithm),
	}

	for i := range served {
		stats.TotalWait += served[i].Wait()
		stats.TotalServiceTime += served[i].ServiceTime
	}

	if stats.Served > 0 {
		stats.MeanWait = stats.TotalWait / float64(stats.Served)
	}
	return stats
}
