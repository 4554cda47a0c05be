// Package guard owns the sandbox operations. Every request path travels
// resolve -> contain -> policy in that order; nothing reads the filesystem
// on behalf of a caller before containment is proven.
package guard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ppiankov/fsgate/internal/audit"
	"github.com/ppiankov/fsgate/internal/config"
	"github.com/ppiankov/fsgate/internal/contain"
	"github.com/ppiankov/fsgate/internal/model"
	"github.com/ppiankov/fsgate/internal/policy"
	"github.com/ppiankov/fsgate/internal/resolve"
	"github.com/ppiankov/fsgate/internal/scan"
)

// errNotConfigured is returned by list/read/config paths when no valid
// allowed directory survived startup normalization. It is an explicit
// condition, distinguishable from a root that happens to hold zero files.
var errNotConfigured = model.NewError(model.KindNotConfigured,
	"no allowed directories configured: set ALLOWED_DIRECTORIES or allowed_directories in the config file")

// Guard applies the security boundary and executes the sandbox operations.
// Its root set and policy are immutable after New; concurrent requests
// share them read-only.
type Guard struct {
	roots     []contain.Root
	rootPaths []string // configured order, for snapshots and listings
	pol       policy.Policy
	cfg       *config.Config
	auditLog  *audit.Log
	sessionID string
	log       *logrus.Entry
}

// New normalizes the configured directories into the immutable root set.
// Each directory is canonicalized through the resolver once; entries that
// do not exist or are not directories are logged and discarded. A Guard
// with zero roots is still returned so the introspection path can report
// the not-configured condition explicitly.
func New(cfg *config.Config, log *logrus.Logger) (*Guard, error) {
	if log == nil {
		log = logrus.New()
		log.SetOutput(os.Stderr)
	}
	sessionID := uuid.NewString()
	entry := log.WithField("session_id", sessionID)

	var roots []contain.Root
	var rootPaths []string
	for _, dir := range cfg.AllowedDirectories {
		root, err := normalizeRoot(dir)
		if err != nil {
			entry.WithField("directory", dir).Warnf("discarding allowed directory: %v", err)
			continue
		}
		roots = append(roots, root)
		rootPaths = append(rootPaths, root.String())
	}

	g := &Guard{
		roots:     roots,
		rootPaths: rootPaths,
		pol: policy.Policy{
			MaxFileSize:       cfg.MaxFileSize,
			AllowedExtensions: cfg.AllowedExtensions,
		},
		cfg:       cfg,
		sessionID: sessionID,
		log:       entry,
	}

	if cfg.AuditLogPath != "" {
		al, err := audit.Open(cfg.AuditLogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open audit log: %w", err)
		}
		g.auditLog = al
	}

	if len(roots) == 0 {
		entry.Warn("no allowed directories configured; all operations will be refused")
	}
	return g, nil
}

func normalizeRoot(dir string) (contain.Root, error) {
	if !filepath.IsAbs(dir) {
		return "", fmt.Errorf("not an absolute path")
	}
	resolved, err := resolve.Resolve(dir, "")
	if err != nil {
		return "", err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory")
	}
	return contain.Root(resolved), nil
}

// Roots returns the normalized allowed roots in configured order.
func (g *Guard) Roots() []contain.Root { return g.roots }

// Close releases the audit log, if one is configured.
func (g *Guard) Close() error {
	if g.auditLog != nil {
		return g.auditLog.Close()
	}
	return nil
}

// List enumerates an explicit directory, or every allowed root when
// dirPath is empty. A root that fails mid-enumeration records a per-root
// error without aborting the others; an invalid explicit target is a
// structured error for the whole call.
func (g *Guard) List(ctx context.Context, dirPath string) (*model.ListResult, error) {
	if len(g.roots) == 0 {
		g.record("list", dirPath, errNotConfigured)
		return nil, errNotConfigured
	}

	var listings []model.DirListing
	if dirPath != "" {
		resolved, root, err := g.resolveTarget(dirPath)
		if err != nil {
			g.record("list", dirPath, err)
			return nil, err
		}
		listings = append(listings, scan.Enumerate(ctx, resolved, root, g.roots))
	} else {
		for _, root := range g.roots {
			listings = append(listings, scan.Enumerate(ctx, root.String(), root, g.roots))
		}
	}

	g.record("list", dirPath, nil)
	return &model.ListResult{
		AllowedDirectories: g.rootPaths,
		Directories:        listings,
		TotalDirectories:   len(listings),
	}, nil
}

// Read returns the content of a single contained file. Size and extension
// policy apply here and only here; listing visibility is not affected by
// them.
func (g *Guard) Read(ctx context.Context, filePath string) (*model.ReadResult, error) {
	res, err := g.read(ctx, filePath)
	g.record("read", filePath, err)
	return res, err
}

func (g *Guard) read(ctx context.Context, filePath string) (*model.ReadResult, error) {
	if len(g.roots) == 0 {
		return nil, errNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return nil, model.NewError(model.KindIOError, "request cancelled")
	}

	resolved, _, err := g.resolveTarget(filePath)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.NewError(model.KindNotFound, "no such file or directory: %q", filePath)
		}
		return nil, model.NewError(model.KindIOError, "stat %q: %v", filePath, err)
	}
	if info.IsDir() {
		return nil, model.NewError(model.KindInvalidPath, "path is not a file: %q", filePath)
	}
	if !info.Mode().IsRegular() {
		return nil, model.NewError(model.KindInvalidPath, "path is not a regular file: %q", filePath)
	}

	if err := g.pol.CheckRead(resolved, info); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.NewError(model.KindNotFound, "no such file or directory: %q", filePath)
		}
		return nil, model.NewError(model.KindIOError, "read %q: %v", filePath, err)
	}

	contentType, encoded := policy.Classify(content)
	return &model.ReadResult{
		FilePath:    filePath,
		Name:        filepath.Base(resolved),
		Size:        info.Size(),
		Modified:    model.FormatTimestamp(info.ModTime()),
		Extension:   filepath.Ext(resolved),
		ContentType: contentType,
		Content:     encoded,
	}, nil
}

// Snapshot reports the active configuration verbatim.
func (g *Guard) Snapshot() model.ConfigSnapshot {
	status := model.StatusConfigured
	if len(g.roots) == 0 {
		status = model.StatusNotConfigured
	}
	dirs := g.rootPaths
	if dirs == nil {
		dirs = []string{}
	}
	return model.ConfigSnapshot{
		AllowedDirectories: dirs,
		MaxFileSize:        g.cfg.MaxFileSize,
		AllowedExtensions:  g.cfg.AllowedExtensions,
		Status:             status,
	}
}

// CheckResult is the outcome of a dry-run access check.
type CheckResult struct {
	Path      string `json:"path"`
	Root      string `json:"root,omitempty"`
	Allowed   bool   `json:"allowed"`
	ErrorKind string `json:"error_kind,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// Check reports whether a read of path would be allowed, without reading
// anything. Runs the same resolve -> contain -> policy pipeline as Read.
func (g *Guard) Check(path string) CheckResult {
	res := CheckResult{Path: path}

	fail := func(err error) CheckResult {
		var me *model.Error
		if errors.As(err, &me) {
			res.ErrorKind = string(me.Kind)
			res.Reason = me.Message
		} else {
			res.Reason = err.Error()
		}
		return res
	}

	if len(g.roots) == 0 {
		return fail(errNotConfigured)
	}

	resolved, root, err := g.resolveTarget(path)
	if err != nil {
		return fail(err)
	}
	res.Root = root.String()

	info, err := os.Stat(resolved)
	if err != nil {
		return fail(model.NewError(model.KindIOError, "stat %q: %v", path, err))
	}
	if info.Mode().IsRegular() {
		if err := g.pol.CheckRead(resolved, info); err != nil {
			return fail(err)
		}
	}

	res.Allowed = true
	return res
}

// resolveTarget canonicalizes a request path and attributes it to a root.
//
// When resolution fails because nothing exists at the location, the
// lexically cleaned form is checked against the roots: a miss is reported
// as not_allowed rather than not_found, so probing outside the sandbox
// reveals nothing about what exists there.
func (g *Guard) resolveTarget(raw string) (string, contain.Root, error) {
	resolved, err := resolve.Resolve(raw, "")
	if err != nil {
		var me *model.Error
		if errors.As(err, &me) && me.Kind == model.KindNotFound {
			if _, cerr := contain.Contain(resolve.Lexical(raw, ""), g.roots); cerr != nil {
				return "", "", model.NotAllowed(raw)
			}
		}
		return "", "", err
	}

	root, err := contain.Contain(resolved, g.roots)
	if err != nil {
		return "", "", model.NotAllowed(raw)
	}
	return resolved, root, nil
}

// record writes the decision to the audit log and the structured logger.
func (g *Guard) record(op, path string, opErr error) {
	decision := audit.DecisionAllow
	entry := audit.AccessEntry{
		SessionID: g.sessionID,
		Operation: op,
		Path:      path,
	}
	if opErr != nil {
		decision = audit.DecisionDeny
		var me *model.Error
		if errors.As(opErr, &me) {
			entry.ErrorKind = string(me.Kind)
			entry.Reason = me.Message
		} else {
			entry.Reason = opErr.Error()
		}
	}
	entry.Decision = decision

	if g.auditLog != nil {
		if err := g.auditLog.Record(entry); err != nil {
			g.log.Warnf("audit record failed: %v", err)
		}
	}
	g.log.WithFields(logrus.Fields{
		"op":       op,
		"path":     path,
		"decision": decision,
		"kind":     entry.ErrorKind,
	}).Debug("access decision")
}
