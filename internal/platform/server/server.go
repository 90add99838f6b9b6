package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"google.golang.org/grpc"
)

// GRPCServer は gRPC サーバーのライフサイクルを管理します。
type GRPCServer struct {
	listenAddr string
	grpcServer *grpc.Server
	log        *slog.Logger
}

// NewGRPC は指定されたアドレスで待ち受ける gRPC サーバーを構築します。
// register にはサービス登録処理を渡します。
func NewGRPC(listenAddr string, log *slog.Logger, register func(grpc.ServiceRegistrar), opts ...grpc.ServerOption) *GRPCServer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	srv := grpc.NewServer(opts...)
	if register != nil {
		register(srv)
	}

	return &GRPCServer{
		listenAddr: listenAddr,
		grpcServer: srv,
		log:        log,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると GracefulStop します。
func (s *GRPCServer) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve は既存のリスナーで待ち受けます。
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		s.grpcServer.GracefulStop()
	}()

	s.log.Info("gRPC server listening", slog.String("addr", lis.Addr().String()))

	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	s.log.Info("gRPC server stopped")
	return nil
}

// GracefulStop はサーバーを安全に停止します。
func (s *GRPCServer) GracefulStop() {
	s.grpcServer.GracefulStop()
}

// HTTPServer は HTTP サーバーのライフサイクルを管理します。
type HTTPServer struct {
	srv             *http.Server
	shutdownTimeout time.Duration
	log             *slog.Logger
}

// NewHTTP は handler を配信する HTTP サーバーを構築します。
func NewHTTP(listenAddr string, handler http.Handler, shutdownTimeout time.Duration, log *slog.Logger) *HTTPServer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &HTTPServer{
		srv: &http.Server{
			Addr:              listenAddr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: shutdownTimeout,
		log:             log,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると Shutdown します。
func (s *HTTPServer) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.srv.Addr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve は既存のリスナーで待ち受け、停止まで戻りません。
func (s *HTTPServer) Serve(ctx context.Context, lis net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", slog.String("addr", lis.Addr().String()))
		if err := s.srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("serve HTTP: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown HTTP: %w", err)
	}
	s.log.Info("HTTP server stopped")

	return <-errCh
}
