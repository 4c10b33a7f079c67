package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type lang struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func TestCache_SetGet(t *testing.T) {
	dir := t.TempDir()

	c, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	want := []lang{{Code: "ja", Name: "Japanese"}}
	if err := c.Set("hl", want, time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// второй экземпляр на том же каталоге - как новый процесс
	reopened, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var got []lang
	ok, err := reopened.Get("hl", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() miss, want hit")
	}
	if len(got) != 1 || got[0] != want[0] {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestCache_Expiry(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	now := time.Now()
	c.now = func() time.Time { return now }
	if err := c.Set("gl", []string{"JP"}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	c.now = func() time.Time { return now.Add(2 * time.Minute) }
	var got []string
	if ok, err := c.Get("gl", &got); ok || err != nil {
		t.Errorf("Get() = %v, %v; want miss after TTL", ok, err)
	}
}

func TestCache_MissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var got []string
	if ok, err := c.Get("locations", &got); ok || err != nil {
		t.Errorf("Get(missing) = %v, %v; want miss", ok, err)
	}

	if err := os.WriteFile(filepath.Join(dir, "locations.json"), []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	if ok, err := c.Get("locations", &got); ok || err != nil {
		t.Errorf("Get(corrupt) = %v, %v; want miss", ok, err)
	}
}

func TestCache_Delete(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := c.Set("search_engines", []string{"google.com"}, time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Delete("search_engines"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := c.Delete("search_engines"); err != nil {
		t.Errorf("Delete() twice error = %v", err)
	}

	var got []string
	if ok, _ := c.Get("search_engines", &got); ok {
		t.Error("Get() hit after Delete")
	}
}

func TestNew_EmptyDir(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Error("New(\"\") expected error")
	}
}
