package mocks

//go:generate mockery --name EventSource --srcpkg github.com/warp-lab/warp-indexer/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name TipSource --srcpkg github.com/warp-lab/warp-indexer/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name MetricStore --srcpkg github.com/warp-lab/warp-indexer/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name CheckpointStore --srcpkg github.com/warp-lab/warp-indexer/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
