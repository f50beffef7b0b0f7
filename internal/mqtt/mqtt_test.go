package mqtt

import (
	"encoding/json"
	"testing"

	"github.com/Mavwarf/voxa-build/internal/pbxproj"
)

func TestPublishBadBroker(t *testing.T) {
	// Connecting to a non-existent broker should return a connect error.
	err := Publish(Options{Broker: "tcp://127.0.0.1:19999", ClientID: "test-client", Topic: "test/topic"}, []byte("hello"))
	if err == nil {
		t.Fatal("expected error for unreachable broker")
	}
}

func TestPublishBadScheme(t *testing.T) {
	err := Publish(Options{Broker: "not-a-url", ClientID: "test-client", Topic: "test/topic"}, []byte("hello"))
	if err == nil {
		t.Fatal("expected error for invalid broker URL")
	}
}

func TestPublishValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"no broker", Options{Topic: "t"}},
		{"no topic", Options{Broker: "tcp://127.0.0.1:19999"}},
		{"bad qos", Options{Broker: "tcp://127.0.0.1:19999", Topic: "t", QoS: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Publish(tt.opts, nil); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestPayload(t *testing.T) {
	rep := pbxproj.Report{
		Plan: "icon-ref",
		Results: []pbxproj.Result{
			{Step: "add file reference", Status: pbxproj.Applied},
			{Step: "add build file", Status: pbxproj.Skipped, Hint: "closest match"},
		},
		Outcome: pbxproj.Partial,
	}
	data, err := Payload("/p/project.pbxproj", rep, true)
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got["plan"] != "icon-ref" || got["project"] != "/p/project.pbxproj" {
		t.Errorf("payload header = %v", got)
	}
	if got["outcome"] != "partial" || got["dry_run"] != true {
		t.Errorf("outcome/dry_run = %v/%v", got["outcome"], got["dry_run"])
	}
	steps, ok := got["steps"].([]any)
	if !ok || len(steps) != 2 {
		t.Fatalf("steps = %v", got["steps"])
	}
	first := steps[0].(map[string]any)
	if first["name"] != "add file reference" || first["status"] != "applied" {
		t.Errorf("first step = %v", first)
	}
	if _, has := first["hint"]; has {
		t.Error("empty hint should be omitted")
	}
	if steps[1].(map[string]any)["hint"] != "closest match" {
		t.Errorf("second step = %v", steps[1])
	}
}

func TestPayloadEmptySteps(t *testing.T) {
	data, err := Payload("p", pbxproj.Report{Plan: "build-phase"}, false)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if steps, ok := got["steps"].([]any); !ok || len(steps) != 0 {
		t.Errorf("steps = %v, want []", got["steps"])
	}
}
