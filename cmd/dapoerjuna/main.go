// Command dapoerjuna runs the Chef Juna recipe assistant: it loads the
// recipe dataset, builds (or reloads) the vector index, wires the model
// provider and the tool registry, and hands a session to the terminal chat.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"dapoerjuna/agent"
	"dapoerjuna/config"
	"dapoerjuna/logging"
	"dapoerjuna/model"
	modelanthropic "dapoerjuna/model/anthropic"
	modelopenai "dapoerjuna/model/openai"
	"dapoerjuna/persona"
	"dapoerjuna/recipe"
	"dapoerjuna/retriever"
	"dapoerjuna/session"
	"dapoerjuna/tool"
	"dapoerjuna/tui"
)

func main() {
	_ = godotenv.Load()

	var (
		cfgPath  string
		reindex  bool
		initOnly bool
	)
	flag.StringVar(&cfgPath, "config", "config.yaml", "Path to YAML config file")
	flag.BoolVar(&reindex, "reindex", false, "Rebuild the vector index even if a persisted one matches")
	flag.BoolVar(&initOnly, "init", false, "Write the default config to the -config path and exit")
	flag.Parse()

	if initOnly {
		if err := config.Save(cfgPath, config.Default()); err != nil {
			log.Fatalf("write config: %v", err)
		}
		fmt.Printf("wrote default config to %s\n", cfgPath)
		return
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.New(&logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})

	store, err := recipe.Load(cfg.Data.CSVPath)
	if err != nil {
		log.Fatalf("load recipes from %s: %v", cfg.Data.CSVPath, err)
	}
	logger.Info("recipes.loaded", "path", cfg.Data.CSVPath, "count", store.Len())

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		log.Fatalf("build embedder: %v", err)
	}

	retr := retriever.New(embedder, func(o *retriever.Options) {
		o.K = cfg.Retriever.K
		o.Logger = logger
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := retr.Build(ctx, store, cfg.Data.IndexPath, reindex); err != nil {
		log.Fatalf("build index: %v", err)
	}

	if cfg.Data.Watch {
		watcher, err := retriever.NewWatcher(cfg.Data.CSVPath, func(ctx context.Context) error {
			reloaded, err := recipe.Load(cfg.Data.CSVPath)
			if err != nil {
				return err
			}
			return retr.Build(ctx, reloaded, cfg.Data.IndexPath, true)
		}, logger)
		if err != nil {
			log.Fatalf("watch %s: %v", cfg.Data.CSVPath, err)
		}
		go watcher.Run(ctx)
	}

	chatModel, err := buildModel(cfg)
	if err != nil {
		log.Fatalf("build model: %v", err)
	}

	registry, err := tool.NewRegistry(tool.RecipeToolkit(store, retr)...)
	if err != nil {
		log.Fatalf("build tool registry: %v", err)
	}

	orch := agent.New(chatModel, retr, registry, func(o *agent.Options) {
		o.MaxSteps = cfg.Agent.MaxSteps
		o.Logger = logger
	})

	sessions := session.NewStore(
		time.Duration(cfg.Session.TTLMins)*time.Minute,
		cfg.Session.MemoryWindow,
		persona.Normalize(cfg.Session.DefaultMood),
	)
	sess := sessions.Get(session.NewID())

	program := tea.NewProgram(tui.New(orch, sess), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatalf("run tui: %v", err)
	}
}

// buildEmbedder selects the embedder implementation from config.
func buildEmbedder(cfg *config.AppConfig) (retriever.Embedder, error) {
	switch cfg.Embedder.Type {
	case "tfidf":
		return retriever.NewTFIDFEmbedder(), nil
	case "openai":
		key := os.Getenv(cfg.Embedder.OpenAI.APIKeyEnv)
		if key == "" {
			return nil, fmt.Errorf("env %s is not set", cfg.Embedder.OpenAI.APIKeyEnv)
		}
		client := openai.NewClient(option.WithAPIKey(key))
		return retriever.NewOpenAIEmbedderFromClient(&client, openai.EmbeddingModel(cfg.Embedder.OpenAI.Model)), nil
	default:
		return nil, fmt.Errorf("unknown embedder type %q", cfg.Embedder.Type)
	}
}

// buildModel selects the chat model provider from config and wraps it with
// the external-call timeout.
func buildModel(cfg *config.AppConfig) (model.Model, error) {
	timeout := time.Duration(cfg.Model.TimeoutSecs) * time.Second

	switch cfg.Model.Provider {
	case "openai":
		key := os.Getenv(cfg.Model.APIKeyEnv)
		if key == "" {
			return nil, fmt.Errorf("env %s is not set", cfg.Model.APIKeyEnv)
		}
		client := openai.NewClient(option.WithAPIKey(key))
		m := modelopenai.NewModelFromClient(&client, func(o *modelopenai.Options) {
			if cfg.Model.Name != "" {
				o.Model = cfg.Model.Name
			}
			o.Temperature = cfg.Model.Temperature
		})
		return model.WithTimeout(m, timeout), nil
	case "anthropic":
		key := os.Getenv(cfg.Model.APIKeyEnv)
		if key == "" {
			return nil, fmt.Errorf("env %s is not set", cfg.Model.APIKeyEnv)
		}
		m := modelanthropic.NewModel(func(o *modelanthropic.Options) {
			if cfg.Model.Name != "" {
				o.Model = anthropic.Model(cfg.Model.Name)
			}
			o.Temperature = cfg.Model.Temperature
			o.APIKey = key
		})
		return model.WithTimeout(m, timeout), nil
	case "mock":
		return model.NewMockModel("mock"), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Model.Provider)
	}
}
