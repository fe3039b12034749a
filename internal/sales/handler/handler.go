package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/fekuna/omnipos-sales-service/internal/sales"
	"github.com/fekuna/omnipos-sales-service/internal/sales/dto"
	"github.com/fekuna/omnipos-sales-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

type SalesHandler struct {
	uc     sales.UseCase
	logger logger.ZapLogger
}

func NewSalesHandler(uc sales.UseCase, log logger.ZapLogger) *SalesHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &SalesHandler{
		uc:     uc,
		logger: log,
	}
}

var _ SalesServiceServer = (*SalesHandler)(nil)

func (h *SalesHandler) GetSales(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	q := dto.ParseSalesQuery(structToValues(req))

	page, err := h.uc.GetSalesPage(ctx, &q)
	if err != nil {
		h.logger.Error("failed to get sales", zap.Error(err))
		return nil, status.Error(codes.Internal, err.Error())
	}
	return toStruct(page)
}

func (h *SalesHandler) GetSalesSummary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	q := dto.ParseSalesQuery(structToValues(req))

	summary, err := h.uc.GetSalesSummary(ctx, &q)
	if err != nil {
		h.logger.Error("failed to get sales summary", zap.Error(err))
		return nil, status.Error(codes.Internal, err.Error())
	}
	return toStruct(summary)
}

func (h *SalesHandler) GetFilterOptions(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	opts, err := h.uc.GetFilterOptions(ctx)
	if err != nil {
		h.logger.Error("failed to get filter options", zap.Error(err))
		return nil, status.Error(codes.Internal, err.Error())
	}
	return toStruct(opts)
}

// structToValues flattens a request Struct into query-string form so both
// transports share one parser. Lists become repeated keys.
func structToValues(s *structpb.Struct) url.Values {
	values := url.Values{}
	for key, v := range s.GetFields() {
		if list := v.GetListValue(); list != nil {
			for _, item := range list.GetValues() {
				if str, ok := scalarString(item); ok {
					values.Add(key, str)
				}
			}
			continue
		}
		if str, ok := scalarString(v); ok {
			values.Set(key, str)
		}
	}
	return values
}

func scalarString(v *structpb.Value) (string, bool) {
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return k.StringValue, true
	case *structpb.Value_NumberValue:
		return strconv.FormatFloat(k.NumberValue, 'f', -1, 64), true
	case *structpb.Value_BoolValue:
		return strconv.FormatBool(k.BoolValue), true
	default:
		return "", false
	}
}

// toStruct goes through JSON so the gRPC payload has the same field names as
// the HTTP body.
func toStruct(v interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	return s, nil
}
