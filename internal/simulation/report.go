package simulation

import (
	"fmt"
	"strings"
	"time"

	"github.com/rmaciel/atendimento/internal/model"
)

const topWaitsCount = 5

// RenderReport renders the report in the plain-text layout of the generated
// statistics files
func RenderReport(r *model.Report) string {
	var b strings.Builder

	stats := r.Statistics

	b.WriteString("Relatório de Simulação - Fila de Atendimento\n")
	fmt.Fprintf(&b, "Gerado em: %s\n\n", r.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Estrutura utilizada: %s\n", stats.Structure)
	fmt.Fprintf(&b, "Algoritmo de ordenação: %s\n", stats.Algorithm)
	fmt.Fprintf(&b, "Regra de reordenação: %s\n", stats.ReorderRule)
	fmt.Fprintf(&b, "Complexidade média (ordenacao): %s\n\n", stats.ComplexityHint)

	fmt.Fprintf(&b, "Clientes atendidos: %d\n", stats.Served)
	fmt.Fprintf(&b, "Tempo total de espera (min): %.2f\n", stats.TotalWait)
	fmt.Fprintf(&b, "Tempo médio de espera (min): %.2f\n", stats.MeanWait)
	fmt.Fprintf(&b, "Tempo total de atendimento (min): %.2f\n\n", stats.TotalServiceTime)

	b.WriteString("Detalhes por cliente (id, nome, tipo, chegada, inicio, termino, espera):\n")
	for i := range r.Served {
		c := &r.Served[i]
		fmt.Fprintf(&b, "%s,%s,%s,%.2f,%.2f,%.2f,%.2f\n",
			c.ID, c.Name, c.Type, c.Arrival, c.ServiceStart, c.ServiceEnd, c.Wait())
	}

	b.WriteString("\nTop clientes que mais esperaram (id, nome, espera_min):\n")
	for _, c := range r.TopWaits(topWaitsCount) {
		fmt.Fprintf(&b, "%s, %s, %.2f\n", c.ID, c.Name, c.Wait())
	}

	return b.String()
}
