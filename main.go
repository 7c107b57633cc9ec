package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"CustomsRAG/app/assistant"
	"CustomsRAG/app/clients"
	"CustomsRAG/app/configs"
	"CustomsRAG/app/documents"
	"CustomsRAG/app/models"
	"CustomsRAG/app/rag"
	"CustomsRAG/app/server"
	"CustomsRAG/app/session"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "customsrag",
		Short: "RAG assistant for Indian customs duty questions",
		Long: "Loads a fixed set of customs-duty documents (PDFs, CSVs, web pages),\n" +
			"embeds them into a persistent vector index and answers questions with\n" +
			"retrieval-augmented generation against a hosted LLM.",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the YAML configuration file")

	rootCmd.AddCommand(serveCommand(&configPath))
	rootCmd.AddCommand(askCommand(&configPath))
	rootCmd.AddCommand(ingestCommand(&configPath))

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

type application struct {
	cfg       *configs.Config
	assistant *assistant.Assistant
	index     *rag.Client
	manifest  documents.Manifest
	docCount  int
}

// bootstrap builds the whole pipeline once: config, model client, document
// loading, and the build-or-reopen of the vector index. The result is passed
// to whichever front end runs, instead of living in hidden global caches.
func bootstrap(ctx context.Context, configPath string) (*application, error) {
	cfg, err := configs.LoadConfig(configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		log.Printf("ℹ️ Config %s not found, using built-in defaults", configPath)
		cfg = configs.Default()
	}

	if cfg.LLM.APIKey == "" {
		log.Printf("❌ LLM API key is not set; embedding and generation calls will fail")
	}

	model := models.NewLLMClient(cfg.LLM)

	docs, manifest := documents.NewLoader(cfg.Sources).LoadAll(ctx)
	log.Printf("✅ Loaded %d documents.", len(docs))
	log.Print(manifest.Tree())

	index, err := rag.NewClient(cfg.Index, model)
	if err != nil {
		return nil, fmt.Errorf("open vector index: %w", err)
	}
	if err := index.Init(ctx, docs); err != nil {
		index.Close()
		return nil, fmt.Errorf("initialize vector index: %w", err)
	}

	return &application{
		cfg:       cfg,
		assistant: assistant.New(index, model, cfg.LLM.TopK, cfg.LLM.Temperature),
		index:     index,
		manifest:  manifest,
		docCount:  len(docs),
	}, nil
}

func serveCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the interactive web front end",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := bootstrap(ctx, *configPath)
			if err != nil {
				return err
			}
			defer app.index.Close()

			registry := clients.NewRegistry()
			defer registry.CloseAll()
			for _, clientCfg := range app.cfg.Clients {
				if !clientCfg.Enabled {
					continue
				}
				client, err := clients.CreateClient(clientCfg)
				if err != nil {
					return fmt.Errorf("create %s client: %w", clientCfg.Type, err)
				}
				if err := registry.Register(client, app.assistant); err != nil {
					return fmt.Errorf("register %s client: %w", clientCfg.Type, err)
				}
			}

			srv := server.New(app.assistant, session.NewStore(), app.docCount)

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start(app.cfg.Server.Addr)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func askCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a single question and print the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			app, err := bootstrap(ctx, *configPath)
			if err != nil {
				return err
			}
			defer app.index.Close()

			answer, err := app.assistant.Answer(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}

			fmt.Println(answer)
			return nil
		},
	}
}

func ingestCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Load the sources, build the vector index and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap(context.Background(), *configPath)
			if err != nil {
				return err
			}
			defer app.index.Close()

			log.Printf("📦 Ingestion complete: %d documents from %d sources",
				app.docCount, len(app.manifest.Results))
			if incomplete := app.manifest.Incomplete(); len(incomplete) > 0 {
				log.Printf("⚠️ %d sources were not loaded", len(incomplete))
			}
			return nil
		},
	}
}
