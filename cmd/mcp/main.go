// The mcp binary exposes the intake system to MCP clients over stdio:
// ad-hoc classification plus read access to stored documents.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kirillkom/document-intake/internal/bootstrap"
	"github.com/kirillkom/document-intake/internal/config"
	"github.com/kirillkom/document-intake/internal/core/domain"
	"github.com/kirillkom/document-intake/internal/observability/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	// Stdout carries the MCP protocol; logs must stay on stderr.
	slog.SetDefault(logging.NewJSONLogger(os.Stderr, "mcp", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, bootstrap.Observers{})
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	srv := server.NewMCPServer("document-intake", "1.0.0")
	registerTools(srv, app)

	if err := server.ServeStdio(srv); err != nil {
		log.Fatalf("mcp server error: %v", err)
	}
}

func registerTools(srv *server.MCPServer, app *bootstrap.App) {
	classifyTool := mcp.NewTool("classify_text",
		mcp.WithDescription("Classify document text into a category, priority and summary without storing anything."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Document text to classify.")),
		mcp.WithString("filename", mcp.Description("Original filename, used when the text is unusable.")),
	)
	srv.AddTool(classifyTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := req.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		filename := req.GetString("filename", "")

		verdict := app.Classifier.Classify(ctx, text, filename)
		return jsonResult(verdict)
	})

	getTool := mcp.NewTool("get_document",
		mcp.WithDescription("Fetch one stored document with its classification state."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Document id.")),
	)
	srv.AddTool(getTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		doc, err := app.DirectoryUC.Get(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(doc)
	})

	listTool := mcp.NewTool("list_documents",
		mcp.WithDescription("List stored documents, newest first, optionally filtered."),
		mcp.WithString("status", mcp.Description("Filter by lifecycle status: uploaded, processing, classified or failed.")),
		mcp.WithString("category", mcp.Description("Filter by category, e.g. Finance or Legal.")),
		mcp.WithString("priority", mcp.Description("Filter by priority: High, Medium or Low.")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of documents to return.")),
	)
	srv.AddTool(listTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter := domain.DocumentFilter{
			Status:   domain.DocumentStatus(req.GetString("status", "")),
			Category: domain.Category(req.GetString("category", "")),
			Priority: domain.Priority(req.GetString("priority", "")),
			Limit:    req.GetInt("limit", 0),
		}

		docs, err := app.DirectoryUC.List(ctx, filter)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(map[string]any{"documents": docs, "count": len(docs)})
	})

	statsTool := mcp.NewTool("document_stats",
		mcp.WithDescription("Document counts grouped by status, category and priority."),
	)
	srv.AddTool(statsTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats, err := app.DirectoryUC.Stats(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(stats)
	})
}

func jsonResult(payload any) (*mcp.CallToolResult, error) {
	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}
	return mcp.NewToolResultText(string(raw)), nil
}
