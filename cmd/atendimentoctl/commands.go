package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rmaciel/atendimento/api"
	"github.com/rmaciel/atendimento/api/client"
	"github.com/spf13/cobra"
)

const registeredMessage = "Cliente cadastrado com sucesso!"

func newCadastrarCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cadastrar",
		Short: "register a customer for future processing",
		RunE:  runCadastrar,
	}
	cmd.Flags().String("id", "", "customer identifier")
	cmd.Flags().String("nome", "", "customer name")
	must(cmd.MarkFlagRequired("nome"))
	cmd.Flags().String("tipo", "comum", "customer type: comum, preferencial, corporativo")
	cmd.Flags().Float64("tempo", 0, "service time in minutes")
	cmd.Flags().String("chegada", "", "arrival minute of the day")
	must(cmd.MarkFlagRequired("chegada"))
	return cmd
}

func runCadastrar(cmd *cobra.Command, _ []string) error {
	endpoint, err := cmd.Flags().GetString("endpoint")
	if err != nil {
		return err
	}

	record := api.RegisterCustomerRequest{}
	if record.ID, err = cmd.Flags().GetString("id"); err != nil {
		return err
	}
	if record.Name, err = cmd.Flags().GetString("nome"); err != nil {
		return err
	}
	if record.Type, err = cmd.Flags().GetString("tipo"); err != nil {
		return err
	}
	if record.ServiceTime, err = cmd.Flags().GetFloat64("tempo"); err != nil {
		return err
	}
	if record.Arrival, err = cmd.Flags().GetString("chegada"); err != nil {
		return err
	}

	if err := client.New(endpoint).Register(cmd.Context(), record); err != nil {
		return err
	}

	fmt.Println(registeredMessage)
	return nil
}

func newImportarCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "importar",
		Short: "register all customers of a CSV file (id,nome,tipo,tempo,chegada)",
		RunE:  runImportar,
	}
	cmd.Flags().StringP("arquivo", "a", "", "path of the CSV file")
	must(cmd.MarkFlagRequired("arquivo"))
	return cmd
}

func runImportar(cmd *cobra.Command, _ []string) error {
	endpoint, err := cmd.Flags().GetString("endpoint")
	if err != nil {
		return err
	}

	path, err := cmd.Flags().GetString("arquivo")
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	records, err := readRecords(file)
	if err != nil {
		return err
	}

	reg := client.New(endpoint)
	for _, record := range records {
		if err := reg.Register(cmd.Context(), record); err != nil {
			return fmt.Errorf("registering customer %s: %w", record.ID, err)
		}
	}

	fmt.Printf("Lidos %d registros.\n", len(records))
	return nil
}

// readRecords parses customer records from CSV content, tolerating an
// optional header row detected by a non-numeric arrival column
func readRecords(content io.Reader) ([]api.RegisterCustomerRequest, error) {
	reader := csv.NewReader(content)
	reader.FieldsPerRecord = -1

	records := make([]api.RegisterCustomerRequest, 0)
	first := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if len(row) < 5 {
			continue
		}

		serviceTime, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			if first {
				first = false
				continue
			}
			return nil, err
		}
		first = false

		records = append(records, api.RegisterCustomerRequest{
			ID:          row[0],
			Name:        row[1],
			Type:        row[2],
			ServiceTime: serviceTime,
			Arrival:     row[4],
		})
	}
	return records, nil
}

func newProcessarCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "processar",
		Short: "trigger processing of the registered customers",
		RunE:  runProcessar,
	}
	return cmd
}

func runProcessar(cmd *cobra.Command, _ []string) error {
	endpoint, err := cmd.Flags().GetString("endpoint")
	if err != nil {
		return err
	}

	if err := client.New(endpoint).Process(cmd.Context()); err != nil {
		return err
	}

	fmt.Println("Processamento disparado.")
	return nil
}

func newEstatisticasCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estatisticas",
		Short: "fetch and display statistics of the latest processing run",
		RunE:  runEstatisticas,
	}
	return cmd
}

func runEstatisticas(cmd *cobra.Command, _ []string) error {
	endpoint, err := cmd.Flags().GetString("endpoint")
	if err != nil {
		return err
	}

	stats, err := client.New(endpoint).Statistics(cmd.Context())
	if err != nil {
		return err
	}

	pretty, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(pretty))
	return nil
}
