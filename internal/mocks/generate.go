package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ScheduleSource --dir ../usecase --output usecase --outpkg usecasemock --filename schedule_source_mock.go
