package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/tiler/internal/application/usecase"
	"github.com/bnema/tiler/internal/domain/entity"
	"github.com/bnema/tiler/internal/logging"
	"github.com/bnema/tiler/internal/ui/layout"
)

// Script is a sequence of layout actions replayed against a layout file.
type Script struct {
	Container entity.Rect  `json:"container" toml:"container"`
	Steps     []ScriptStep `json:"steps" toml:"steps"`
}

// ScriptStep is one action. Fields not used by the action are ignored.
//
// Reducer actions: insert, remove, magnify, focus, swap, split,
// compute_move, commit, clear, resize_move, resize_end.
// Pointer interactions: drag (node dropped on target at point) and
// resize (handle dragged to point).
type ScriptStep struct {
	Action    string                     `json:"action" toml:"action"`
	Node      entity.NodeID              `json:"node,omitempty" toml:"node,omitempty"`
	Target    entity.NodeID              `json:"target,omitempty" toml:"target,omitempty"`
	Parent    entity.NodeID              `json:"parent,omitempty" toml:"parent,omitempty"`
	Direction string                     `json:"direction,omitempty" toml:"direction,omitempty"`
	Index     int                        `json:"index,omitempty" toml:"index,omitempty"`
	Handle    int                        `json:"handle,omitempty" toml:"handle,omitempty"`
	Point     *entity.Point              `json:"point,omitempty" toml:"point,omitempty"`
	Weights   []float64                  `json:"weights,omitempty" toml:"weights,omitempty"`
	Insert    *entity.LayoutNodeSnapshot `json:"insert,omitempty" toml:"insert,omitempty"`
}

// LoadScript reads a script file. "-" reads JSON from stdin.
func LoadScript(path string) (*Script, error) {
	r, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	script := &Script{}
	if err := decode(r, FormatFromPath(path), script); err != nil {
		return nil, fmt.Errorf("load script %s: %w", path, err)
	}
	return script, nil
}

func (s ScriptStep) direction() (entity.DropDirection, error) {
	if s.Direction == "" {
		return entity.DropNone, fmt.Errorf("direction is required")
	}
	return entity.ParseDropDirection(s.Direction)
}

func (s ScriptStep) point() (entity.Point, error) {
	if s.Point == nil {
		return entity.Point{}, fmt.Errorf("point is required")
	}
	return *s.Point, nil
}

// ReducerAction converts the step to a reducer action. Pointer interactions
// return a nil action.
func (s ScriptStep) ReducerAction() (usecase.Action, error) {
	switch s.Action {
	case "insert":
		if s.Insert == nil {
			return nil, fmt.Errorf("insert is required")
		}
		return usecase.InsertNodeAction{ParentID: s.Parent, Node: entity.NodeFromSnapshot(s.Insert), Index: s.Index}, nil
	case "remove":
		return usecase.RemoveNodeAction{NodeID: s.Node}, nil
	case "magnify":
		return usecase.MagnifyNodeAction{NodeID: s.Node}, nil
	case "focus":
		return usecase.FocusNodeAction{NodeID: s.Node}, nil
	case "swap":
		return usecase.SwapNodesAction{NodeA: s.Node, NodeB: s.Target}, nil
	case "split":
		if s.Insert == nil {
			return nil, fmt.Errorf("insert is required")
		}
		dir, err := s.direction()
		if err != nil {
			return nil, err
		}
		return usecase.SplitNodeAction{TargetID: s.Target, Node: entity.NodeFromSnapshot(s.Insert), Direction: dir}, nil
	case "compute_move":
		dir, err := s.direction()
		if err != nil {
			return nil, err
		}
		return usecase.ComputeMoveAction{NodeID: s.Node, TargetID: s.Target, Direction: dir}, nil
	case "commit":
		return usecase.CommitPendingAction{}, nil
	case "clear":
		return usecase.ClearPendingAction{}, nil
	case "resize_move":
		if len(s.Weights) != 2 {
			return nil, fmt.Errorf("weights must hold two values")
		}
		return usecase.ResizeMoveAction{ContainerID: s.Parent, Index: s.Index, Weights: [2]float64{s.Weights[0], s.Weights[1]}}, nil
	case "resize_end":
		return usecase.ResizeEndAction{}, nil
	case "drag", "resize":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown action %q", s.Action)
	}
}

// RunScript replays every step against m. It stops at the first failing step.
func RunScript(ctx context.Context, m *layout.Model, script *Script) error {
	log := logging.FromContext(ctx)
	if script == nil {
		return nil
	}
	if !script.Container.IsEmpty() {
		m.SetContainerRect(ctx, script.Container)
	}

	for i, step := range script.Steps {
		if err := runStep(ctx, m, step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Action, err)
		}
		log.Debug().Int("step", i+1).Str("action", step.Action).Uint64("generation", m.Generation()).Msg("script step applied")
	}
	return nil
}

func runStep(ctx context.Context, m *layout.Model, step ScriptStep) error {
	switch step.Action {
	case "drag":
		p, err := step.point()
		if err != nil {
			return err
		}
		started, err := m.BeginDrag(ctx, step.Node)
		if err != nil {
			return err
		}
		if !started {
			return errors.New("drag refused while resizing")
		}
		m.DragOver(step.Target, p)
		return m.Drop(ctx, step.Target, p)

	case "resize":
		p, err := step.point()
		if err != nil {
			return err
		}
		started, err := m.BeginResize(ctx, step.Handle)
		if err != nil {
			return err
		}
		if !started {
			return errors.New("resize refused during another interaction")
		}
		m.ResizeMove(p)
		return m.EndResize(ctx)
	}

	action, err := step.ReducerAction()
	if err != nil {
		return err
	}
	return m.Dispatch(ctx, action)
}
