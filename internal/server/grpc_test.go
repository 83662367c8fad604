package server

import (
	"context"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	authv1 "github.com/Rollin-123/belafrica-node-sub000/api/auth/v1"
	devv1 "github.com/Rollin-123/belafrica-node-sub000/api/dev/v1"
	messagev1 "github.com/Rollin-123/belafrica-node-sub000/api/message/v1"
	"github.com/Rollin-123/belafrica-node-sub000/internal/devotp"
	devotphandler "github.com/Rollin-123/belafrica-node-sub000/internal/devotp/handler"
	"github.com/Rollin-123/belafrica-node-sub000/internal/envelope"
	"github.com/Rollin-123/belafrica-node-sub000/internal/geo"
	identityservice "github.com/Rollin-123/belafrica-node-sub000/internal/identity/service"
	messagerepo "github.com/Rollin-123/belafrica-node-sub000/internal/message/repository"
	messageservice "github.com/Rollin-123/belafrica-node-sub000/internal/message/service"
	"github.com/Rollin-123/belafrica-node-sub000/internal/otp"
	otprepo "github.com/Rollin-123/belafrica-node-sub000/internal/otp/repository"
	"github.com/Rollin-123/belafrica-node-sub000/internal/security"
	userrepo "github.com/Rollin-123/belafrica-node-sub000/internal/user/repository"
)

// mockServiceRegistrar implements grpc.ServiceRegistrar for testing.
type mockServiceRegistrar struct {
	services []string
}

func (m *mockServiceRegistrar) RegisterService(desc *grpc.ServiceDesc, impl interface{}) {
	m.services = append(m.services, desc.ServiceName)
}

func TestRegisterServices(t *testing.T) {
	tests := []struct {
		name string
		deps Deps
		want int
	}{
		{"health only", Deps{}, 1},
		{"auth and messages", Deps{Auth: &identityservice.AuthService{}, Messages: &messageservice.MessageService{}}, 3},
		{"with dev service", Deps{Auth: &identityservice.AuthService{}, DevOTPHandler: devotphandler.NewServer(devotp.NewMemoryStore(0))}, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reg := &mockServiceRegistrar{}
			RegisterServices(reg, tc.deps)
			if len(reg.services) != tc.want {
				t.Errorf("registered %v, want %d services", reg.services, tc.want)
			}
		})
	}
}

func TestPublicMethods(t *testing.T) {
	public := PublicMethods()
	for _, m := range []string{
		authv1.AuthService_RequestOTP_FullMethodName,
		authv1.AuthService_CompleteProfile_FullMethodName,
		healthpb.Health_Check_FullMethodName,
	} {
		if !public[m] {
			t.Errorf("%s should be public", m)
		}
	}
	if public[messagev1.MessageService_SendMessage_FullMethodName] {
		t.Error("SendMessage must require a Permanent token")
	}
}

type testClients struct {
	auth     authv1.AuthServiceClient
	messages messagev1.MessageServiceClient
	dev      devv1.DevServiceClient
	health   healthpb.HealthClient
}

func startServer(t *testing.T) testClients {
	t.Helper()
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	store := devotp.NewMemoryStore(otprepo.DefaultTTL)
	auth := identityservice.NewAuthService(identityservice.Deps{
		OTP:    otp.NewIssuer(otprepo.NewMemoryRepository(), store),
		Gate:   geo.NewGate(nil, geo.DefaultTable(), nil, true),
		Users:  userrepo.NewMemoryRepository(),
		Tokens: tokens,
	})
	s := NewServer(Deps{
		Auth:          auth,
		Messages:      messageservice.NewMessageService(envelope.NewCipher(), messagerepo.NewMemoryRepository(), nil),
		Tokens:        tokens,
		DevOTPHandler: devotphandler.NewServer(store),
	})

	lis := bufconn.Listen(1 << 20)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return testClients{
		auth:     authv1.NewAuthServiceClient(conn),
		messages: messagev1.NewMessageServiceClient(conn),
		dev:      devv1.NewDevServiceClient(conn),
		health:   healthpb.NewHealthClient(conn),
	}
}

func bearer(ctx context.Context, token string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
}

func TestServer_RegistrationAndMessaging(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()
	const phone = "+33612345678"

	if _, err := c.auth.RequestOTP(ctx, &authv1.RequestOTPRequest{PhoneNumber: phone, CountryCode: "+33"}); err != nil {
		t.Fatalf("RequestOTP: %v", err)
	}
	dev, err := c.dev.GetOTP(ctx, &devv1.GetOTPRequest{PhoneNumber: phone})
	if err != nil {
		t.Fatalf("GetOTP: %v", err)
	}
	verified, err := c.auth.VerifyOTP(ctx, &authv1.VerifyOTPRequest{PhoneNumber: phone, Code: dev.Code})
	if err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
	if verified.Stage != authv1.StageOTPVerified || verified.TempToken == "" {
		t.Fatalf("VerifyOTP = %+v", verified)
	}

	// A Temporary token does not open protected methods.
	_, err = c.messages.SendMessage(bearer(ctx, verified.TempToken), &messagev1.SendMessageRequest{ConversationID: "conv-1", Content: "hi"})
	if status.Code(err) != codes.Unauthenticated {
		t.Errorf("SendMessage with temporary token: code = %v, want Unauthenticated", status.Code(err))
	}

	done, err := c.auth.CompleteProfile(ctx, &authv1.CompleteProfileRequest{
		TempToken: verified.TempToken, Pseudo: "abc", CountryName: "France", NationalityName: "Senegal", Community: "SenegalEnFrance",
	})
	if err != nil {
		t.Fatalf("CompleteProfile: %v", err)
	}
	if done.Identity == nil || !done.Identity.ProfileComplete {
		t.Fatalf("identity = %+v", done.Identity)
	}

	authed := bearer(ctx, done.PermanentToken)
	sent, err := c.messages.SendMessage(authed, &messagev1.SendMessageRequest{ConversationID: "conv-1", Content: "bonjour"})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if sent.Message.SenderID != done.Identity.ID {
		t.Errorf("SenderID = %q, want %q", sent.Message.SenderID, done.Identity.ID)
	}
	list, err := c.messages.ListMessages(authed, &messagev1.ListMessagesRequest{ConversationID: "conv-1"})
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(list.Messages) != 1 || list.Messages[0].Content != "bonjour" {
		t.Errorf("ListMessages = %+v", list.Messages)
	}

	session, err := c.auth.ValidateSession(ctx, &authv1.ValidateSessionRequest{Token: done.PermanentToken})
	if err != nil {
		t.Fatalf("ValidateSession: %v", err)
	}
	if !session.Valid || session.Identity.ID != done.Identity.ID {
		t.Errorf("ValidateSession = %+v", session)
	}
}

func TestServer_ProtectedWithoutToken(t *testing.T) {
	c := startServer(t)
	_, err := c.messages.EncryptMessage(context.Background(), &messagev1.EncryptMessageRequest{Plaintext: "x", ConversationID: "c"})
	if status.Code(err) != codes.Unauthenticated {
		t.Errorf("code = %v, want Unauthenticated", status.Code(err))
	}
}

func TestServer_ValidationErrorsSurfaceAsInvalidArgument(t *testing.T) {
	c := startServer(t)
	_, err := c.auth.RequestOTP(context.Background(), &authv1.RequestOTPRequest{PhoneNumber: "0612", CountryCode: "+33"})
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("code = %v, want InvalidArgument", status.Code(err))
	}
}

func TestServer_Health(t *testing.T) {
	c := startServer(t)
	resp, err := c.health.Check(context.Background(), &healthpb.HealthCheckRequest{})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("status = %v, want SERVING", resp.GetStatus())
	}
}
