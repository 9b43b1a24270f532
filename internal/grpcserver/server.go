// Package grpcserver implements the jobs.v1.JobService gRPC server.
//
// It delegates all storage logic to a jobs.Store and handles only the gRPC
// transport concerns: error mapping and conversion between jobs types and
// protobuf messages.
package grpcserver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"jobmate/jobs-service/internal/jobs"
)

// Server implements JobServiceServer.
type Server struct {
	store jobs.Store
}

var _ JobServiceServer = (*Server)(nil)

// NewServer constructs a gRPC Server backed by the given store.
func NewServer(store jobs.Store) *Server {
	return &Server{store: store}
}

// ─── RPC implementations ──────────────────────────────────────────────────────

// CreateJob stores a new job. Accepts title, salary, equity and companyHandle.
func (s *Server) CreateJob(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var data jobs.NewJob
	for name, v := range req.GetFields() {
		var err error
		switch name {
		case "title":
			data.Title, err = stringField(name, v)
		case "companyHandle":
			data.CompanyHandle, err = stringField(name, v)
		case "salary":
			data.Salary, err = optionalInt(name, v)
		case "equity":
			data.Equity, err = optionalString(name, v)
		default:
			err = status.Errorf(codes.InvalidArgument, "unknown field %q", name)
		}
		if err != nil {
			return nil, err
		}
	}

	job, err := s.store.Create(ctx, data)
	if err != nil {
		return nil, toGRPCError(err)
	}
	return jobToProto(job), nil
}

// ListJobs returns {"jobs": [...]} for the filters carried in req.
func (s *Server) ListJobs(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	raw := make(map[string]string, len(req.GetFields()))
	for name, v := range req.GetFields() {
		str, err := filterValue(name, v)
		if err != nil {
			return nil, err
		}
		raw[name] = str
	}

	f, err := jobs.ParseFilter(raw)
	if err != nil {
		return nil, toGRPCError(err)
	}

	list, err := s.store.FindAll(ctx, f)
	if err != nil {
		return nil, toGRPCError(err)
	}

	values := make([]*structpb.Value, 0, len(list))
	for i := range list {
		values = append(values, structpb.NewStructValue(jobToProto(&list[i])))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"jobs": structpb.NewListValue(&structpb.ListValue{Values: values}),
	}}, nil
}

// GetJob returns a single job by id.
func (s *Server) GetJob(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	id, err := jobID(req.GetValue())
	if err != nil {
		return nil, err
	}

	job, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, toGRPCError(err)
	}
	return jobToProto(job), nil
}

// UpdateJob applies a partial update. req must carry "id"; the other allowed
// fields are title, salary and equity. A null salary or equity clears it.
func (s *Server) UpdateJob(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var (
		data  jobs.JobUpdate
		id    int
		hasID bool
	)
	for name, v := range req.GetFields() {
		var err error
		switch name {
		case "id":
			var n *int
			n, err = optionalInt(name, v)
			if err == nil && n != nil {
				id, hasID = *n, true
			}
		case "title":
			var t string
			t, err = stringField(name, v)
			data.Title = &t
		case "salary":
			data.Salary, err = optionalInt(name, v)
			data.ClearSalary = isNull(v)
		case "equity":
			data.Equity, err = optionalString(name, v)
			data.ClearEquity = isNull(v)
		default:
			err = status.Errorf(codes.InvalidArgument, "field %q cannot be updated", name)
		}
		if err != nil {
			return nil, err
		}
	}
	if !hasID {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	job, err := s.store.Update(ctx, id, data)
	if err != nil {
		return nil, toGRPCError(err)
	}
	return jobToProto(job), nil
}

// RemoveJob deletes a job by id.
func (s *Server) RemoveJob(ctx context.Context, req *wrapperspb.Int64Value) (*emptypb.Empty, error) {
	id, err := jobID(req.GetValue())
	if err != nil {
		return nil, err
	}

	if err := s.store.Remove(ctx, id); err != nil {
		return nil, toGRPCError(err)
	}
	return &emptypb.Empty{}, nil
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// toGRPCError maps domain errors to gRPC status errors.
func toGRPCError(err error) error {
	var (
		ve *jobs.ValidationError
		ce *jobs.ConstraintError
	)
	switch {
	case errors.As(err, &ve):
		return status.Error(codes.InvalidArgument, ve.Msg)
	case errors.Is(err, jobs.ErrNoData):
		return status.Error(codes.InvalidArgument, "no fields to update")
	case errors.Is(err, jobs.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.As(err, &ce):
		return status.Error(codes.FailedPrecondition, ce.Msg)
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}

// jobToProto converts a jobs.Job to its Struct representation. Absent salary
// and equity become null.
func jobToProto(j *jobs.Job) *structpb.Struct {
	fields := map[string]*structpb.Value{
		"id":            structpb.NewNumberValue(float64(j.ID)),
		"title":         structpb.NewStringValue(j.Title),
		"salary":        structpb.NewNullValue(),
		"equity":        structpb.NewNullValue(),
		"companyHandle": structpb.NewStringValue(j.CompanyHandle),
	}
	if j.Salary != nil {
		fields["salary"] = structpb.NewNumberValue(float64(*j.Salary))
	}
	if j.Equity != nil {
		fields["equity"] = structpb.NewStringValue(*j.Equity)
	}
	return &structpb.Struct{Fields: fields}
}

func jobID(v int64) (int, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, status.Errorf(codes.InvalidArgument, "job id %d out of range", v)
	}
	return int(v), nil
}

func stringField(name string, v *structpb.Value) (string, error) {
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", status.Errorf(codes.InvalidArgument, "%s must be a string", name)
	}
	return s.StringValue, nil
}

func isNull(v *structpb.Value) bool {
	_, ok := v.GetKind().(*structpb.Value_NullValue)
	return ok
}

func optionalString(name string, v *structpb.Value) (*string, error) {
	if isNull(v) {
		return nil, nil
	}
	s, err := stringField(name, v)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func optionalInt(name string, v *structpb.Value) (*int, error) {
	switch k := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return nil, nil
	case *structpb.Value_NumberValue:
		f := k.NumberValue
		if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
			return nil, status.Errorf(codes.InvalidArgument, "%s must be an integer", name)
		}
		n := int(f)
		return &n, nil
	default:
		return nil, status.Errorf(codes.InvalidArgument, "%s must be a number", name)
	}
}

// filterValue renders a filter argument the way it would appear in a query
// string, so REST and gRPC share jobs.ParseFilter.
func filterValue(name string, v *structpb.Value) (string, error) {
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return k.StringValue, nil
	case *structpb.Value_NumberValue:
		return strconv.FormatFloat(k.NumberValue, 'f', -1, 64), nil
	case *structpb.Value_BoolValue:
		return strconv.FormatBool(k.BoolValue), nil
	case *structpb.Value_NullValue:
		return "", nil
	default:
		return "", status.Error(codes.InvalidArgument, fmt.Sprintf("filter %q must be a scalar", name))
	}
}
