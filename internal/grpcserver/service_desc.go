package grpcserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The JobService messages are protobuf well-known types: jobs and filters
// travel as google.protobuf.Struct in the external camelCase shape, ids as
// google.protobuf.Int64Value.
const (
	ServiceName = "jobs.v1.JobService"

	CreateJobMethod = "/" + ServiceName + "/CreateJob"
	ListJobsMethod  = "/" + ServiceName + "/ListJobs"
	GetJobMethod    = "/" + ServiceName + "/GetJob"
	UpdateJobMethod = "/" + ServiceName + "/UpdateJob"
	RemoveJobMethod = "/" + ServiceName + "/RemoveJob"
)

// JobServiceServer is the server API of jobs.v1.JobService.
type JobServiceServer interface {
	CreateJob(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListJobs(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetJob(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	UpdateJob(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveJob(context.Context, *wrapperspb.Int64Value) (*emptypb.Empty, error)
}

// RegisterJobServiceServer registers srv on s.
func RegisterJobServiceServer(s grpc.ServiceRegistrar, srv JobServiceServer) {
	s.RegisterService(&JobServiceDesc, srv)
}

// JobServiceDesc describes jobs.v1.JobService for grpc.Server.
var JobServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*JobServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateJob", Handler: structHandler(CreateJobMethod, JobServiceServer.CreateJob)},
		{MethodName: "ListJobs", Handler: structHandler(ListJobsMethod, JobServiceServer.ListJobs)},
		{MethodName: "GetJob", Handler: idHandler(GetJobMethod, JobServiceServer.GetJob)},
		{MethodName: "UpdateJob", Handler: structHandler(UpdateJobMethod, JobServiceServer.UpdateJob)},
		{MethodName: "RemoveJob", Handler: idHandler(RemoveJobMethod, JobServiceServer.RemoveJob)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "jobs/v1/jobs.proto",
}

type methodHandler = func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error)

func unaryHandler[Req any, Resp any](fullMethod string, call func(JobServiceServer, context.Context, *Req) (Resp, error)) methodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(JobServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(JobServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func structHandler[Resp any](fullMethod string, call func(JobServiceServer, context.Context, *structpb.Struct) (Resp, error)) methodHandler {
	return unaryHandler(fullMethod, call)
}

func idHandler[Resp any](fullMethod string, call func(JobServiceServer, context.Context, *wrapperspb.Int64Value) (Resp, error)) methodHandler {
	return unaryHandler(fullMethod, call)
}

// JobServiceClient is the client API of jobs.v1.JobService.
type JobServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewJobServiceClient returns a client over cc.
func NewJobServiceClient(cc grpc.ClientConnInterface) *JobServiceClient {
	return &JobServiceClient{cc: cc}
}

func (c *JobServiceClient) CreateJob(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CreateJobMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *JobServiceClient) ListJobs(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ListJobsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *JobServiceClient) GetJob(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetJobMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *JobServiceClient) UpdateJob(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, UpdateJobMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *JobServiceClient) RemoveJob(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, RemoveJobMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
