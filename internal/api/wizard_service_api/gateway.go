package wizard_service_api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type gatewayCall func(ctx context.Context, r *http.Request, params map[string]string) (*structpb.Struct, error)

// RegisterWizardServiceHandlerServer maps WizardService onto REST routes of
// mux, calling srv in process:
//
//	POST   /v1/sessions
//	GET    /v1/sessions/{sessionId}
//	POST   /v1/sessions/{sessionId}/intents   (body: intent)
//	DELETE /v1/sessions/{sessionId}
func RegisterWizardServiceHandlerServer(mux *runtime.ServeMux, srv WizardServiceServer) error {
	routes := []struct {
		method  string
		pattern string
		call    gatewayCall
	}{
		{http.MethodPost, "/v1/sessions", func(ctx context.Context, _ *http.Request, _ map[string]string) (*structpb.Struct, error) {
			return srv.StartSession(ctx, &structpb.Struct{})
		}},
		{http.MethodGet, "/v1/sessions/{sessionId}", func(ctx context.Context, _ *http.Request, params map[string]string) (*structpb.Struct, error) {
			return srv.GetSession(ctx, sessionStruct(params["sessionId"]))
		}},
		{http.MethodPost, "/v1/sessions/{sessionId}/intents", func(ctx context.Context, r *http.Request, params map[string]string) (*structpb.Struct, error) {
			intent, err := decodeBody(mux, r)
			if err != nil {
				return nil, err
			}
			req := sessionStruct(params["sessionId"])
			req.Fields["intent"] = structpb.NewStructValue(intent)
			return srv.Dispatch(ctx, req)
		}},
		{http.MethodDelete, "/v1/sessions/{sessionId}", func(ctx context.Context, _ *http.Request, params map[string]string) (*structpb.Struct, error) {
			return srv.EndSession(ctx, sessionStruct(params["sessionId"]))
		}},
	}

	for _, rt := range routes {
		call := rt.call
		err := mux.HandlePath(rt.method, rt.pattern, func(w http.ResponseWriter, r *http.Request, params map[string]string) {
			ctx := runtime.NewServerMetadataContext(r.Context(), runtime.ServerMetadata{})
			_, outbound := runtime.MarshalerForRequest(mux, r)

			resp, err := call(ctx, r, params)
			if err != nil {
				runtime.HTTPError(ctx, mux, outbound, w, r, err)
				return
			}
			runtime.ForwardResponseMessage(ctx, mux, outbound, w, r, resp)
		})
		if err != nil {
			return fmt.Errorf("register %s %s: %w", rt.method, rt.pattern, err)
		}
	}
	return nil
}

func sessionStruct(id string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"sessionId": structpb.NewStringValue(id),
	}}
}

func decodeBody(mux *runtime.ServeMux, r *http.Request) (*structpb.Struct, error) {
	inbound, _ := runtime.MarshalerForRequest(mux, r)
	body := new(structpb.Struct)
	if err := inbound.NewDecoder(r.Body).Decode(body); err != nil && !errors.Is(err, io.EOF) {
		return nil, status.Errorf(codes.InvalidArgument, "invalid intent body: %v", err)
	}
	if body.Fields == nil {
		body.Fields = map[string]*structpb.Value{}
	}
	return body, nil
}
