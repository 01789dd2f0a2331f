package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"hostelmeals/internal/api"
	"hostelmeals/internal/config"
	"hostelmeals/internal/gateway"
	"hostelmeals/internal/guard"
	"hostelmeals/internal/nav"
	"hostelmeals/internal/receipt"
	"hostelmeals/internal/roles"
	"hostelmeals/internal/session"
	"hostelmeals/internal/utils"
)

// App wires the client layers for one mealctl invocation, in dependency
// order: navigator and session first, then the gateway that reads them,
// then the services that go through the gateway.
type App struct {
	Env     config.Env
	Nav     *nav.History
	Session *session.Store
	Gateway *gateway.Gateway
	Roles   *roles.Resolver
	Guard   *guard.Guard
	Routes  guard.Table
	API     *api.Client
	Receipt receipt.Service
}

func NewApp(env config.Env) *App {
	history := nav.NewHistory()
	store := session.NewStore(session.NewGotrueProvider(env.AuthProjectRef, env.AuthAnonKey))
	gw := gateway.New(env, store, history)
	client := api.New(gw)
	store.SetRegistrar(client.Users.Upsert)
	resolver := roles.New(store, gw)

	return &App{
		Env:     env,
		Nav:     history,
		Session: store,
		Gateway: gw,
		Roles:   resolver,
		Guard:   guard.New(store, resolver, history),
		Routes:  guard.DefaultTable(),
		API:     client,
		Receipt: receipt.Service{Payments: client.Payments, RequestID: utils.NewRequestID()},
	}
}

// Restore resolves the persisted refresh token (env first, then the state
// file) into a live session, or Anonymous when there is none.
func (a *App) Restore(ctx context.Context) {
	token := a.Env.RefreshToken
	if token == "" {
		token = readStateToken()
	}
	a.Session.Restore(ctx, token)
}

func stateTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hostelmeals", "refresh_token")
}

func readStateToken() string {
	path := stateTokenPath()
	if path == "" {
		return ""
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

func writeStateToken(token string) {
	path := stateTokenPath()
	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		utils.LogEvent("", "cli", "state", "cannot create state dir: "+err.Error())
		return
	}
	if err := os.WriteFile(path, []byte(token), 0o600); err != nil {
		utils.LogEvent("", "cli", "state", "cannot persist refresh token: "+err.Error())
	}
}

func clearStateToken() {
	path := stateTokenPath()
	if path == "" {
		return
	}
	_ = os.Remove(path)
}
