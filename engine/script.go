package engine

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/yeremiapane/smart-pos/models"
	"gopkg.in/yaml.v3"
)

// Script is a recorded sequence of intents, replayed against a snapshot by
// the replay command.
//
//	name: morning rush
//	steps:
//	  - kind: authenticate
//	    args: {username: cashier1, password: "123"}
//	  - kind: add_to_cart
//	    args: {product_id: p1}
type Script struct {
	Name  string       `yaml:"name"`
	Steps []ScriptStep `yaml:"steps"`
}

// ScriptStep is one intent. Expect, when set, is the applied flag the step
// must produce.
type ScriptStep struct {
	Kind   IntentKind `yaml:"kind"`
	Args   yaml.Node  `yaml:"args,omitempty"`
	Expect *bool      `yaml:"expect_applied,omitempty"`
}

// NewIntent returns the zero value intent for kind.
func NewIntent(kind IntentKind) (Intent, error) {
	switch kind {
	case KindAuthenticate:
		return &Authenticate{}, nil
	case KindSignOut:
		return &SignOut{}, nil
	case KindAddToCart:
		return &AddToCart{}, nil
	case KindRemoveFromCart:
		return &RemoveFromCart{}, nil
	case KindSetQuantity:
		return &SetQuantity{}, nil
	case KindClearCart:
		return &ClearCart{}, nil
	case KindCheckout:
		return &Checkout{}, nil
	case KindAdvanceOrderStatus:
		return &AdvanceOrderStatus{}, nil
	case KindCreateProduct:
		return &CreateProduct{}, nil
	case KindUpdateProduct:
		return &UpdateProduct{}, nil
	case KindDeleteProduct:
		return &DeleteProduct{}, nil
	case KindReplaceSettings:
		return &ReplaceSettings{}, nil
	case KindCreateUser:
		return &CreateUser{}, nil
	case KindDeleteUser:
		return &DeleteUser{}, nil
	}
	return nil, fmt.Errorf("unknown intent kind %q", kind)
}

// Intent decodes the step arguments into a concrete intent value.
func (st ScriptStep) Intent() (Intent, error) {
	ptr, err := NewIntent(st.Kind)
	if err != nil {
		return nil, err
	}
	if !st.Args.IsZero() {
		if err := st.Args.Decode(ptr); err != nil {
			return nil, fmt.Errorf("decode %s args: %w", st.Kind, err)
		}
	}
	return deref(ptr), nil
}

// deref turns the pointer from NewIntent back into the value type Apply
// switches on.
func deref(in Intent) Intent {
	switch v := in.(type) {
	case *Authenticate:
		return *v
	case *SignOut:
		return *v
	case *AddToCart:
		return *v
	case *RemoveFromCart:
		return *v
	case *SetQuantity:
		return *v
	case *ClearCart:
		return *v
	case *Checkout:
		return *v
	case *AdvanceOrderStatus:
		return *v
	case *CreateProduct:
		return *v
	case *UpdateProduct:
		return *v
	case *DeleteProduct:
		return *v
	case *ReplaceSettings:
		return *v
	case *CreateUser:
		return *v
	case *DeleteUser:
		return *v
	}
	return in
}

// DecodeScript parses a YAML script, rejecting unknown top-level fields
// and unknown intent kinds.
func DecodeScript(data []byte) (*Script, error) {
	var script Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&script); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, errors.New("script has no steps")
	}
	for i, st := range script.Steps {
		if _, err := st.Intent(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &script, nil
}

// StepResult records the outcome of one replayed step.
type StepResult struct {
	Step    int        `json:"step"`
	Kind    IntentKind `json:"kind"`
	Applied bool       `json:"applied"`
	// Mismatch is set when the step carried an expectation it did not meet.
	Mismatch bool `json:"mismatch"`
}

// Replay applies every step of script in order starting from s.
func (e *Engine) Replay(s models.Snapshot, script *Script) (models.Snapshot, []StepResult, error) {
	results := make([]StepResult, 0, len(script.Steps))
	for i, st := range script.Steps {
		in, err := st.Intent()
		if err != nil {
			return s, results, fmt.Errorf("step %d: %w", i+1, err)
		}
		var applied bool
		s, applied = e.Apply(s, in)
		results = append(results, StepResult{
			Step:     i + 1,
			Kind:     st.Kind,
			Applied:  applied,
			Mismatch: st.Expect != nil && *st.Expect != applied,
		})
	}
	return s, results, nil
}
