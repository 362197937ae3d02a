package seeder

func Defaults(password string) []Seeder {
	return []Seeder{
		UsersSeeder{Password: password},
		FollowRequestsSeeder{},
	}
}
