package interaction

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	perr "wikicord/internal/platform/errors"
)

func TestDecode_Ping(t *testing.T) {
	env, err := Decode([]byte(`{"id":"1","application_id":"2","type":1,"token":"tok","version":1}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	p, ok := env.(Ping)
	if !ok {
		t.Fatalf("expected Ping, got %T", env)
	}
	if p.ID != "1" || p.ApplicationID != "2" || p.Token != "tok" || p.Type != KindPing {
		t.Fatalf("unexpected meta: %+v", p.Meta)
	}
}

func TestDecode_CommandWithOptions(t *testing.T) {
	body := `{
		"id":"10","type":2,"guild_id":"20","channel_id":"30","locale":"en-US",
		"member":{"user":{"id":"40","username":"someone"}},
		"data":{"id":"50","name":"article","type":1,"options":[
			{"name":"title","type":3,"value":"Go (programming language)"},
			{"name":"plaintext","type":5,"value":true},
			{"name":"count","type":4,"value":3},
			{"name":"ratio","type":10,"value":0.5}
		]}
	}`
	env, err := Decode([]byte(body))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	c, ok := env.(Command)
	if !ok {
		t.Fatalf("expected Command, got %T", env)
	}
	if c.UserID != "40" || c.GuildID != "20" || c.Locale != "en-US" {
		t.Fatalf("unexpected meta: %+v", c.Meta)
	}
	want := Invocation{ID: "50", Name: "article", Options: []Option{
		{Name: "title", Value: String("Go (programming language)")},
		{Name: "plaintext", Value: Bool(true)},
		{Name: "count", Value: Integer(3)},
		{Name: "ratio", Value: Number(0.5)},
	}}
	if !reflect.DeepEqual(c.Invocation, want) {
		t.Fatalf("invocation = %+v\nwant %+v", c.Invocation, want)
	}
	if s, ok := c.Invocation.String("title"); !ok || s != "Go (programming language)" {
		t.Fatalf("String(title) = %q %v", s, ok)
	}
	if b, ok := c.Invocation.Bool("plaintext"); !ok || !b {
		t.Fatalf("Bool(plaintext) = %v %v", b, ok)
	}
	if _, ok := c.Invocation.String("plaintext"); ok {
		t.Fatal("String on a boolean option should not match")
	}
	if _, ok := c.Invocation.Lookup("missing"); ok {
		t.Fatal("Lookup(missing) should fail")
	}
}

func TestDecode_AutocompleteFocused(t *testing.T) {
	body := `{"type":4,"user":{"id":"7"},"data":{"name":"article","options":[
		{"name":"title","type":3,"value":"Gol","focused":true},
		{"name":"page","type":4,"value":12,"focused":false}
	]}}`
	env, err := Decode([]byte(body))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	a, ok := env.(Autocomplete)
	if !ok {
		t.Fatalf("expected Autocomplete, got %T", env)
	}
	if a.UserID != "7" {
		t.Fatalf("user id from top-level user = %q", a.UserID)
	}
	o, ok := a.Invocation.Focused()
	if !ok || o.Name != "title" {
		t.Fatalf("Focused() = %+v %v", o, ok)
	}
	if f := o.Value.(Focused); f.Text != "Gol" || f.Type() != OptionString {
		t.Fatalf("focused value = %+v", f)
	}
}

func TestDecode_FocusedNumericPartial(t *testing.T) {
	for _, raw := range []string{`"12"`, `12`} {
		env, err := Decode([]byte(`{"type":4,"data":{"name":"x","options":[{"name":"n","type":4,"value":` + raw + `,"focused":true}]}}`))
		if err != nil {
			t.Fatalf("Decode(%s): %v", raw, err)
		}
		o, _ := env.(Autocomplete).Invocation.Focused()
		if f := o.Value.(Focused); f.Text != "12" || f.Type() != OptionInteger {
			t.Fatalf("focused %s = %+v", raw, f)
		}
	}
}

func TestDecode_OtherKinds(t *testing.T) {
	for _, body := range []string{
		`{"type":3,"data":{"custom_id":"btn"}}`,
		`{"type":5,"data":{"custom_id":"modal"}}`,
		`{"type":42}`,
		`{"type":300}`,
		`{"type":70000}`,
	} {
		env, err := Decode([]byte(body))
		if err != nil {
			t.Fatalf("Decode(%s): %v", body, err)
		}
		if _, ok := env.(Other); !ok {
			t.Fatalf("Decode(%s) = %T, want Other", body, env)
		}
		if _, ok := InvocationOf(env); ok {
			t.Fatalf("Other should not carry an invocation")
		}
	}
}

func TestDecode_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty":               ``,
		"not json":            `not json`,
		"truncated":           `{"type":1`,
		"trailing":            `{"type":1}{"type":1}`,
		"array":               `[1]`,
		"type string":         `{"type":"1"}`,
		"missing type":        `{"id":"1"}`,
		"zero type":           `{"type":0}`,
		"bad snowflake":       `{"type":1,"id":"abc"}`,
		"command no data":     `{"type":2}`,
		"command no name":     `{"type":2,"data":{"options":[]}}`,
		"blank name":          `{"type":4,"data":{"name":"  "}}`,
		"duplicate options":   `{"type":2,"data":{"name":"a","options":[{"name":"x","type":3,"value":"1"},{"name":"x","type":3,"value":"2"}]}}`,
		"option without name": `{"type":2,"data":{"name":"a","options":[{"type":3,"value":"1"}]}}`,
		"option without type": `{"type":2,"data":{"name":"a","options":[{"name":"x","value":"1"}]}}`,
		"option type clash":   `{"type":2,"data":{"name":"a","options":[{"name":"x","type":5,"value":"yes"}]}}`,
		"option null":         `{"type":2,"data":{"name":"a","options":[{"name":"x","type":3,"value":null}]}}`,
		"option missing":      `{"type":2,"data":{"name":"a","options":[{"name":"x","type":3}]}}`,
		"subcommand option":   `{"type":2,"data":{"name":"a","options":[{"name":"sub","type":1,"value":"x"}]}}`,
		"focused boolean":     `{"type":4,"data":{"name":"a","options":[{"name":"b","type":5,"value":true,"focused":true}]}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			env, err := Decode([]byte(body))
			if err == nil {
				t.Fatalf("expected error, got %T", env)
			}
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
			if perr.CodeOf(err) != perr.ErrorCodeJSON {
				t.Fatalf("expected JSON code, got %v", perr.CodeOf(err))
			}
			if e, _ := perr.As(err); e.Message() != "invalid interaction" {
				t.Fatalf("client message = %q", e.Message())
			}
		})
	}
}

func TestDecode_OptionErrorNamesCause(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"subcommand without value", `{"type":2,"data":{"name":"a","options":[{"name":"sub","type":1}]}}`, `option "sub" has unsupported type 1`},
		{"group with value", `{"type":2,"data":{"name":"a","options":[{"name":"grp","type":2,"value":"x"}]}}`, `option "grp" has unsupported type 2`},
		{"string without value", `{"type":2,"data":{"name":"a","options":[{"name":"x","type":3}]}}`, `option "x" has no value`},
		{"focused user", `{"type":4,"data":{"name":"a","options":[{"name":"u","type":6,"value":"1","focused":true}]}}`, `option "u" has unsupported type 6`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error = %q, want it to mention %q", err.Error(), tc.want)
			}
		})
	}
}

func TestDecode_IgnoresUnknownFields(t *testing.T) {
	env, err := Decode([]byte(`{"type":1,"entitlements":[],"app_permissions":"0","context":0,"extra":{"deep":[1,2]}}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, ok := env.(Ping); !ok {
		t.Fatalf("expected Ping, got %T", env)
	}
}

func TestEncodeDecode_Lossless(t *testing.T) {
	envs := []Envelope{
		Ping{Meta: Meta{ID: "1", ApplicationID: "2", Type: KindPing, Token: "t"}},
		Command{
			Meta: Meta{ID: "3", Type: KindCommand, GuildID: "4", ChannelID: "5", UserID: "6", Locale: "de"},
			Invocation: Invocation{ID: "7", Name: "article", Options: []Option{
				{Name: "title", Value: String("Rust")},
				{Name: "plaintext", Value: Bool(false)},
				{Name: "n", Value: Integer(-9)},
				{Name: "f", Value: Number(2.25)},
			}},
		},
		Autocomplete{
			Meta: Meta{Type: KindAutocomplete, UserID: "8"},
			Invocation: Invocation{Name: "article", Options: []Option{
				{Name: "title", Value: Focused{Text: "", Of: OptionString}},
			}},
		},
		Other{Meta: Meta{Type: KindComponent, ID: "9"}},
	}
	for _, env := range envs {
		raw, err := Encode(env)
		if err != nil {
			t.Fatalf("Encode(%T): %v", env, err)
		}
		back, err := Decode(raw)
		if err != nil {
			t.Fatalf("Decode(Encode(%T)): %v\n%s", env, err, raw)
		}
		if !reflect.DeepEqual(back, env) {
			t.Fatalf("round trip mismatch\n got %#v\nwant %#v", back, env)
		}
	}
}

func TestEncodeInvocation(t *testing.T) {
	raw, err := EncodeInvocation(Invocation{Name: "unknown", Options: []Option{{Name: "q", Value: String("x")}}})
	if err != nil {
		t.Fatalf("EncodeInvocation: %v", err)
	}
	got := string(raw)
	if !strings.Contains(got, `"name":"unknown"`) || !strings.Contains(got, `"value":"x"`) {
		t.Fatalf("unexpected invocation json: %s", got)
	}
}

func TestKindString(t *testing.T) {
	if KindPing.String() != "ping" || KindAutocomplete.String() != "autocomplete" || Kind(9).String() != "type_9" {
		t.Fatal("unexpected kind labels")
	}
}
