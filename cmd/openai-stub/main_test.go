package main

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/hyperifyio/factlens/internal/llm"
	"github.com/hyperifyio/factlens/internal/score"
)

func TestStub_DrivesRemoteClassifier(t *testing.T) {
	srv := httptest.NewServer(newMux("stub-model"))
	defer srv.Close()

	client := llm.NewOpenAIProvider(srv.URL+"/v1", "", 0)
	models, err := client.ListModels(context.Background())
	if err != nil || len(models.Models) != 1 || models.Models[0].ID != "stub-model" {
		t.Fatalf("ListModels=%+v err=%v", models, err)
	}

	rc := &score.RemoteClassifier{Client: client, Model: "stub-model"}
	v := rc.Score(context.Background(), "SHOCKING secret they don't want you to know! Doctors hate this miracle cure!")
	if v.Label != score.Fake {
		t.Fatalf("label=%s, want Fake (%+v)", v.Label, v)
	}
	v = rc.Score(context.Background(), "According to study results, research shows steady growth, as confirmed by a peer-reviewed analysis.")
	if v.Label != score.Reliable {
		t.Fatalf("label=%s, want Reliable (%+v)", v.Label, v)
	}
}

func TestClassify_NoIndicatorsIsReliableHalf(t *testing.T) {
	if got := classify("Classify this.\n\nText:\nThe weather was mild."); got != `{"confidence":0.5,"label":"Reliable"}` {
		t.Fatalf("classify=%s", got)
	}
}
