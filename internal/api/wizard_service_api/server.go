package wizard_service_api

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Domenick1991/resortbooking/internal/service/wizard"
	"github.com/Domenick1991/resortbooking/internal/session"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Server implements WizardService on top of the session registry.
type Server struct {
	sessions session.SessionUseCase
}

func NewServer(sessions session.SessionUseCase) *Server {
	return &Server{sessions: sessions}
}

type sessionRequest struct {
	SessionID string `json:"sessionId"`
}

type dispatchRequest struct {
	SessionID string        `json:"sessionId"`
	Intent    wizard.Intent `json:"intent"`
}

func (s *Server) StartSession(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	w, err := s.sessions.Start(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(w.View())
}

func (s *Server) GetSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in sessionRequest
	if err := fromStruct(req, &in); err != nil {
		return nil, err
	}
	if in.SessionID == "" {
		return nil, status.Error(codes.InvalidArgument, "sessionId is required")
	}
	w, err := s.sessions.Get(ctx, in.SessionID)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(w.View())
}

func (s *Server) Dispatch(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in dispatchRequest
	if err := fromStruct(req, &in); err != nil {
		return nil, err
	}
	if in.SessionID == "" || in.Intent.Type == "" {
		return nil, status.Error(codes.InvalidArgument, "sessionId and intent.type are required")
	}
	view, err := s.sessions.Apply(ctx, in.SessionID, in.Intent)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(view)
}

func (s *Server) EndSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in sessionRequest
	if err := fromStruct(req, &in); err != nil {
		return nil, err
	}
	if err := s.sessions.End(ctx, in.SessionID); err != nil {
		return nil, toStatus(err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{}}, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, wizard.ErrUnknownIntent),
		errors.Is(err, wizard.ErrInvalidDay),
		errors.Is(err, wizard.ErrUnknownAddOn),
		errors.Is(err, wizard.ErrUnknownAccommodation),
		errors.Is(err, wizard.ErrUnknownOccasion),
		errors.Is(err, wizard.ErrInvalidAddOnQuantity),
		errors.Is(err, wizard.ErrMissingGuestDetails):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, wizard.ErrStepNotReachable),
		errors.Is(err, wizard.ErrSubmissionInFlight),
		errors.Is(err, wizard.ErrNotReviewStep),
		errors.Is(err, wizard.ErrBookingIncomplete),
		errors.Is(err, wizard.ErrBookingClosed):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

func fromStruct(in *structpb.Struct, v any) error {
	data, err := protojson.Marshal(in)
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "decode request: %v", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return status.Errorf(codes.InvalidArgument, "decode request: %v", err)
	}
	return nil
}

var _ WizardServiceServer = (*Server)(nil)
