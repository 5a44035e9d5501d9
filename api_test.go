package binstruct_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/zoobzio/binstruct"
)

// --- Cloner interface tests ---

type clonerTestStruct struct {
	Code  uint16
	Items []string `bin:"-"`
}

func (c clonerTestStruct) Clone() clonerTestStruct {
	clone := clonerTestStruct{Code: c.Code}
	if c.Items != nil {
		clone.Items = make([]string, len(c.Items))
		copy(clone.Items, c.Items)
	}
	return clone
}

func TestCloner_DeepCopy(t *testing.T) {
	original := clonerTestStruct{Code: 7, Items: []string{"a", "b"}}
	cloned := original.Clone()

	cloned.Items[0] = "modified"
	if original.Items[0] != "a" {
		t.Error("modifying clone affected original")
	}
}

// --- Override interface tests ---

// upperName packs Name upper-cased through the override and never touches
// the receiver it was handed.
type upperName struct {
	Name string `bin:"char[8]"`
	Seen int    `bin:"-"`
}

func (u upperName) Clone() upperName { return u }

func (u *upperName) PackInstance(inst *binstruct.Instance) error {
	u.Seen++
	return inst.Set("Name", strings.ToUpper(u.Name))
}

func (u *upperName) UnpackInstance(inst *binstruct.Instance) error {
	name, err := inst.Text("Name")
	if err != nil {
		return err
	}
	u.Name = strings.ToLower(name)
	u.Seen = -1
	return nil
}

var (
	_ binstruct.PackOverride   = (*upperName)(nil)
	_ binstruct.UnpackOverride = (*upperName)(nil)
)

func TestPackOverride(t *testing.T) {
	proc, err := binstruct.NewProcessor[upperName]()
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}

	original := &upperName{Name: "alice"}
	data, err := proc.Store(context.Background(), original)
	if err != nil {
		t.Fatalf("Store() error: %v", err)
	}

	if string(data) != "ALICE\x00\x00\x00" {
		t.Errorf("Store() = %q, want %q", data, "ALICE\x00\x00\x00")
	}
	if original.Seen != 0 {
		t.Error("PackInstance should run on a clone")
	}
}

func TestUnpackOverride(t *testing.T) {
	proc, err := binstruct.NewProcessor[upperName]()
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}

	got, err := proc.Load(context.Background(), []byte("BOB\x00\x00\x00\x00\x00"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Name != "bob" || got.Seen != -1 {
		t.Errorf("Load() = %+v, want Name=bob Seen=-1", got)
	}
}

type failingOverride struct {
	V uint8
}

func (f *failingOverride) PackInstance(_ *binstruct.Instance) error {
	return errors.New("pack failed")
}

func (f *failingOverride) UnpackInstance(_ *binstruct.Instance) error {
	return errors.New("unpack failed")
}

func TestOverride_ErrorPropagation(t *testing.T) {
	proc, err := binstruct.NewProcessor[failingOverride]()
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}

	_, err = proc.Store(context.Background(), &failingOverride{V: 1})
	if err == nil || !strings.Contains(err.Error(), "pack failed") {
		t.Errorf("Store() error = %v, want pack failed", err)
	}

	_, err = proc.Load(context.Background(), []byte{1})
	if err == nil || !strings.Contains(err.Error(), "unpack failed") {
		t.Errorf("Load() error = %v, want unpack failed", err)
	}
}

// badOverride tries to store a value the schema rejects.
type badOverride struct {
	V uint8
}

func (b *badOverride) PackInstance(inst *binstruct.Instance) error {
	return inst.Set("V", 1000)
}

func TestPackOverride_StillValidated(t *testing.T) {
	proc, err := binstruct.NewProcessor[badOverride]()
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}

	_, err = proc.Store(context.Background(), &badOverride{})
	if !errors.Is(err, binstruct.ErrEncode) {
		t.Errorf("Store() error = %v, want ErrEncode", err)
	}
}

// --- Codec interface tests ---

func TestProcessor_IsCodec(t *testing.T) {
	proc, err := binstruct.NewProcessor[clonerTestStruct]()
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}

	var c binstruct.Codec = proc
	if c.ContentType() != "application/octet-stream" {
		t.Errorf("ContentType() = %q", c.ContentType())
	}

	data, err := c.Marshal(clonerTestStruct{Code: 0x0304})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	var back clonerTestStruct
	if err := c.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if back.Code != 0x0304 {
		t.Errorf("round-trip Code = %#x, want 0x304", back.Code)
	}
}
