package listener

import (
	"os"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/dotsoulja/dotgo-watchcode/internal/applog"
	"github.com/dotsoulja/dotgo-watchcode/internal/excludelist"
	"github.com/dotsoulja/dotgo-watchcode/internal/worker"
)

// Post runs the idempotent post-success/post-failure side effects: on
// success, reassign ownership of newly written outputs when UID/GID are
// set, append the input to exclude.list exactly once, and optionally
// delete the input; on failure, best-effort unlink every planned output.
type Post struct {
	OutputRoot         string // output directory outputs are chowned up to, exclusive
	OutputPaths        []string
	InputAbsPath       string
	InputRelPath       string // relative to the input root, the exclude.list entry
	DeleteAfterProcess bool

	Excludes *excludelist.List
	Logger   applog.Logger
}

func (p *Post) OnStart([]string)           {}
func (p *Post) OnLine(string)              {}
func (p *Post) OnProgress(worker.Progress) {}

func (p *Post) OnEnd() {
	if uid, gid, ok := ownerFromEnv(); ok {
		for _, path := range p.OutputPaths {
			if err := chownUpTo(path, p.OutputRoot, uid, gid); err != nil && p.Logger != nil {
				p.Logger.Warnf("post listener: chown %s: %v", path, err)
			}
		}
	}

	if p.Excludes != nil {
		if err := p.Excludes.Append(p.InputRelPath); err != nil && p.Logger != nil {
			p.Logger.Errorf("post listener: append exclude list: %v", err)
		}
	}

	if p.DeleteAfterProcess {
		if err := os.Remove(p.InputAbsPath); err != nil && !os.IsNotExist(err) && p.Logger != nil {
			p.Logger.Warnf("post listener: delete input %s: %v", p.InputAbsPath, err)
		}
	}
}

func (p *Post) OnFailed(error) {
	for _, path := range p.OutputPaths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) && p.Logger != nil {
			p.Logger.Warnf("post listener: cleanup %s: %v", path, err)
		}
	}
}

// ownerFromEnv reads the UID/GID environment variables; both must
// be set and parse as decimal integers.
func ownerFromEnv() (uid, gid int, ok bool) {
	uidStr, uidSet := os.LookupEnv("UID")
	gidStr, gidSet := os.LookupEnv("GID")
	if !uidSet || !gidSet {
		return 0, 0, false
	}
	u, err := strconv.Atoi(uidStr)
	if err != nil {
		return 0, 0, false
	}
	g, err := strconv.Atoi(gidStr)
	if err != nil {
		return 0, 0, false
	}
	return u, g, true
}

// chownUpTo reassigns ownership of path and every ancestor directory up
// to (but not including) root, calling chown only on entries whose
// ownership differs from the target.
func chownUpTo(path, root string, uid, gid int) error {
	root = filepath.Clean(root)
	for current := filepath.Clean(path); current != root && current != "." && current != string(filepath.Separator); {
		info, err := os.Lstat(current)
		if err != nil {
			return err
		}
		if st, ok := info.Sys().(*syscall.Stat_t); ok {
			if int(st.Uid) != uid || int(st.Gid) != gid {
				if err := os.Chown(current, uid, gid); err != nil {
					return err
				}
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return nil
		}
		current = parent
	}
	return nil
}
