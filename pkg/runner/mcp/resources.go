package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerLayoutResource(srv, svc)
	registerNotificationsResource(srv, svc)
}

func registerLayoutResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"phoneshell://layout",
		"Home screen",
		mcp.WithResourceDescription("App pages, dock, widgets and badge counts."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		dto, err := svc.GetLayout(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, dto)
	})
}

func registerNotificationsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"phoneshell://notifications",
		"Notifications",
		mcp.WithResourceDescription("Aggregated notifications in display order."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		dto, err := svc.ListNotifications(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, dto)
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
