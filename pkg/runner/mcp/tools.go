package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerGetLayoutTool(srv, svc)
	registerMoveAppTool(srv, svc)
	registerInstallAppTool(srv, svc)
	registerUninstallAppTool(srv, svc)
	registerListNotificationsTool(srv, svc)
	registerClearNotificationsTool(srv, svc)
}

func registerGetLayoutTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_layout",
		mcp.WithDescription("Return the home screen: app pages, dock, widgets and badge counts."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.GetLayout(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerMoveAppTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"move_app",
		mcp.WithDescription("Move an app or widget, as if dragged onto a zone and dropped before a target."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("App id or widget kind to move."),
		),
		mcp.WithString("zone",
			mcp.Required(),
			mcp.Description("Destination zone."),
			mcp.Enum("main", "dock", "widgets"),
		),
		mcp.WithString("target",
			mcp.Description("Optional id to insert before. Omit to append."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID     string `json:"id"`
			Zone   string `json:"zone"`
			Target string `json:"target"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.ID == "" {
			return mcp.NewToolResultError("id is required"), nil
		}

		dto, err := svc.MoveApp(ctx, args.ID, args.Zone, args.Target)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerInstallAppTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"install_app",
		mcp.WithDescription("Install an app from the marketplace; it is appended to the last page."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("App id to install."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.InstallApp(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUninstallAppTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"uninstall_app",
		mcp.WithDescription("Uninstall a removable app. System apps are refused."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("App id to uninstall."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.UninstallApp(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListNotificationsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_notifications",
		mcp.WithDescription("List missed calls and unread message threads, calls first."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.ListNotifications(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerClearNotificationsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"clear_notifications",
		mcp.WithDescription("Mark every missed call seen and every thread read."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.ClearNotifications(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
