package database

var (
	SeedAdminFor   = seedAdmin
	SeedCoursesFor = seedCourses
	SeedCoursesRaw = &seedCoursesYAML
)
