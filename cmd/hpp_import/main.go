// hpp_import carga un archivo de HPP (CSV o XLSX) desde la terminal, con las mismas reglas
// que POST /api/order-items/hpp/upload.
//
// Uso: go run ./cmd/hpp_import -shop <shop_id> -file hpp.xlsx [-notes "..."] [-dry-run]
// Con -dry-run solo muestra la vista previa; sin él envía el lote al almacén configurado.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	appcost "github.com/jhoicas/hpp-api/internal/application/costbasis"
	"github.com/jhoicas/hpp-api/internal/application/dto"
	"github.com/jhoicas/hpp-api/internal/domain"
	"github.com/jhoicas/hpp-api/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/hpp-api/internal/infrastructure/store"
	"github.com/jhoicas/hpp-api/pkg/config"
	"github.com/jhoicas/hpp-api/pkg/logger"
)

func main() {
	filePath := flag.String("file", "", "archivo CSV o XLSX con columnas SKU y HPP")
	shopID := flag.String("shop", "", "tienda destino")
	notes := flag.String("notes", "", "notas del lote")
	dryRun := flag.Bool("dry-run", false, "solo vista previa, no envía")
	flag.Parse()

	if *filePath == "" || *shopID == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: os.Stderr})

	f, err := os.Open(*filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir archivo: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	stores, err := store.Open(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Almacén: %v\n", err)
		os.Exit(1)
	}
	defer stores.Close()

	uc := appcost.NewIngestionUseCase(
		stores.Catalog, stores.Invalidator,
		spreadsheet.NewDecoder(), spreadsheet.NewTemplateWriter(),
		appcost.NewSubmitUseCase(stores.CostBasis, log),
		log,
	)

	res, err := uc.Upload(ctx, *shopID, filepath.Base(*filePath), f, dto.HPPUploadRequest{
		Submit: !*dryRun,
		Notes:  *notes,
	})
	if err != nil {
		report(err)
		os.Exit(1)
	}
	printPreview(res)
}

func printPreview(res *dto.HPPUploadResponse) {
	fmt.Printf("Filas ingeridas: %d, aceptadas: %d\n", res.Ingested, res.Accepted)
	reasons := make([]string, 0, len(res.Skipped))
	for r := range res.Skipped {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		fmt.Printf("  omitidas (%s): %d\n", r, res.Skipped[r])
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SKU\tHPP\tACTUAL\tCATÁLOGO")
	for _, p := range res.Pending {
		current := "-"
		if p.CurrentHPP != nil {
			current = p.CurrentHPP.String()
		}
		known := "sí"
		if !p.Known {
			known = "no"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.SKU, p.HPP.String(), current, known)
	}
	_ = tw.Flush()

	if res.Result != nil {
		fmt.Printf("Lote %s enviado: %d SKU actualizados\n", res.Result.BatchID, res.Result.Updated)
	}
}

func report(err error) {
	var (
		pre *domain.PreconditionError
		sub *domain.SubmissionError
	)
	switch {
	case errors.As(err, &pre):
		fmt.Fprintf(os.Stderr, "No se envió el lote: %v\n", pre)
	case errors.As(err, &sub):
		fmt.Fprintf(os.Stderr, "Rechazado: %v\n", sub)
		for _, r := range sub.Rejected {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", r.SKU, r.Reason)
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
