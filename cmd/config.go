package cmd

type Config struct {
	HTTPPort             string
	DBHost               string
	DBPort               string
	DBUser               string
	DBPassword           string
	DBName               string
	DBSslMode            string
	CarrierBaseURL       string
	CarrierToken         string
	CarrierSecretKey     string
	CarrierCourierEmail  string
	CarrierCourierName   string
	CarrierCourierTariff string
	RedisAddr            string
	ReconcileSchedule    string
}
