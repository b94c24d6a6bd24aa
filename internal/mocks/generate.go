package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name FootballDataProvider --dir ../usecase --output ../usecase --inpackage --testonly --structname MockFootballDataProvider --filename mock_football_data_provider_test.go
