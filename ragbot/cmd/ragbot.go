// Command-line entrypoint for a local REPL against an in-memory index.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ragbot/ragbot/config"
	"ragbot/ragbot/conversation"
	"ragbot/ragbot/orchestrator"
	"ragbot/ragbot/services/embedding"
	"ragbot/ragbot/services/ingest"
	"ragbot/ragbot/services/prompt"
	"ragbot/ragbot/services/retrieval"
	"ragbot/ragbot/services/vectorstore"
	"ragbot/ragbot/utils/logging"
)

var seedDocs = []string{
	"Paris is the capital of France.",
	"France is in Europe.",
	"The Seine flows through Paris.",
}

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()

	args := os.Args[1:]
	if len(args) < 1 || args[0] != "connect" {
		fmt.Println("ragbot CLI usage:")
		fmt.Println("  ragbot connect   # start a local REPL with an in-memory index")
		os.Exit(1)
	}

	template, err := config.LoadPromptTemplate(cfg.PromptFile)
	if err != nil {
		fmt.Println("prompt template error:", err)
		os.Exit(1)
	}
	builder, err := prompt.NewBuilder(template)
	if err != nil {
		fmt.Println("prompt template error:", err)
		os.Exit(1)
	}

	embedder := embedding.NewOllamaClient(cfg.OllamaURL, cfg.EmbedModel)
	store := vectorstore.NewMemory()
	indexer := ingest.NewIndexer(embedder, store)

	ctx := context.Background()
	if _, err := indexer.Index(ctx, seedDocs); err != nil {
		fmt.Println("seeding index failed (is ollama running?):", err)
		os.Exit(1)
	}

	sessions := conversation.NewStore()
	pipeline := retrieval.NewPipeline(embedder, store, cfg.RetrievalTimeout)
	orch := orchestrator.New(sessions, pipeline, builder, cfg.TopK)

	userID := fmt.Sprintf("cli-%s", uuid.New().String()[:8]) // unique session per run
	logging.AppLogger.Info("ragbot REPL started", zap.String("user_id", userID))

	fmt.Println("ragbot connected. Session:", userID)
	fmt.Println("Type a question, 'history' to inspect the conversation, 'clear' to reset, or 'exit' to quit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("ragbot> ")
		if !scanner.Scan() {
			break // EOF or error
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			fmt.Println("Goodbye!")
			return
		case "history":
			fmt.Println(orch.Conversation(userID).String())
			continue
		case "clear":
			orch.Reset(userID)
			fmt.Println("Conversation cleared.")
			continue
		}

		out, err := orch.Handle(ctx, userID, line)
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		fmt.Println(out)
		fmt.Println()
	}
}
