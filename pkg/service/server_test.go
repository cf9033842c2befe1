package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/onsi/gomega"
	"go.uber.org/zap"
)

func TestServer_Start_StopsOnContextCancel(t *testing.T) {
	g := gomega.NewGomegaWithT(t)
	// given
	router := mux.NewRouter()
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := Server{Addr: "127.0.0.1:0", Logger: zap.NewNop().Sugar(), Router: router}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- srv.Start(ctx)
	}()

	// when
	cancel()

	// then
	g.Eventually(done, 5*time.Second).Should(gomega.Receive(gomega.BeNil()))
}

func TestServer_Start_InvalidAddr(t *testing.T) {
	g := gomega.NewGomegaWithT(t)

	srv := Server{Addr: "127.0.0.1:-1", Logger: zap.NewNop().Sugar(), Router: mux.NewRouter()}

	err := srv.Start(context.Background())

	g.Expect(err).Should(gomega.HaveOccurred())
}
