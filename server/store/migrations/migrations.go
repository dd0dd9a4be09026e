package migrations

// DialectTemplate is used as the templating control for differing SQL syntax between our supported databases
type DialectTemplate struct {
	Binary            string
	IntegerPrimaryKey string
	BigInt            string
}

// MigrationSet provides a set of migrations that can be applied to a database.
type MigrationSet []MigrationData

// MigrationData provides the data for a single migration, including Up and Down SQL.
// Templated values are supported and will be substituted for database-specific values
// before the migrations are applied.
type MigrationData struct {
	SequenceNumber int64
	Name           string
	UpSQL          string
	DownSQL        string
}

// ServerMigrations is the set of migrations to set up the database for the API server.
var ServerMigrations = MigrationSet{
	{
		SequenceNumber: 1,
		Name:           "create_members",
		UpSQL: `CREATE TABLE IF NOT EXISTS members
				(
					member_id {{ .IntegerPrimaryKey}},
					member_created_at timestamp without time zone NOT NULL,
					member_updated_at timestamp without time zone NOT NULL,
					member_etag text NOT NULL,
					member_nickname text,
					member_provider text NOT NULL,
					member_provider_user_id text NOT NULL,
					member_email text NOT NULL,
					member_gender text,
					member_age_range text,
					member_status text NOT NULL
				);
				CREATE UNIQUE INDEX IF NOT EXISTS members_provider_user_unique_index ON members(member_provider, member_provider_user_id);
				CREATE INDEX IF NOT EXISTS members_nickname_index ON members(member_nickname);`,
		DownSQL: `DROP INDEX members_nickname_index;
				  DROP INDEX members_provider_user_unique_index;
				  DROP TABLE members;`,
	},
	{
		SequenceNumber: 2,
		Name:           "create_subway_lines",
		UpSQL: `CREATE TABLE IF NOT EXISTS subway_lines
				(
					subway_line_id {{ .IntegerPrimaryKey}},
					subway_line_created_at timestamp without time zone NOT NULL,
					subway_line_name text NOT NULL,
					subway_line_phone_number text NOT NULL,
					subway_line_region_type text NOT NULL
				);
				CREATE UNIQUE INDEX IF NOT EXISTS subway_lines_name_unique_index ON subway_lines(subway_line_name);
				CREATE TABLE IF NOT EXISTS stations
				(
					station_id {{ .IntegerPrimaryKey}},
					station_created_at timestamp without time zone NOT NULL,
					station_subway_line_id {{ .BigInt}} NOT NULL REFERENCES subway_lines (subway_line_id) ON UPDATE NO ACTION ON DELETE CASCADE,
					station_name text NOT NULL,
					station_identity {{ .BigInt}} NOT NULL
				);
				CREATE UNIQUE INDEX IF NOT EXISTS stations_line_name_unique_index ON stations(station_subway_line_id, station_name);`,
		DownSQL: `DROP INDEX stations_line_name_unique_index;
				  DROP TABLE stations;
				  DROP INDEX subway_lines_name_unique_index;
				  DROP TABLE subway_lines;`,
	},
	{
		SequenceNumber: 3,
		Name:           "create_categories",
		UpSQL: `CREATE TABLE IF NOT EXISTS categories
				(
					category_id {{ .IntegerPrimaryKey}},
					category_created_at timestamp without time zone NOT NULL,
					category_name text NOT NULL
				);
				CREATE UNIQUE INDEX IF NOT EXISTS categories_name_unique_index ON categories(category_name);`,
		DownSQL: `DROP INDEX categories_name_unique_index;
				  DROP TABLE categories;`,
	},
	{
		SequenceNumber: 4,
		Name:           "create_lost_posts",
		UpSQL: `CREATE TABLE IF NOT EXISTS lost_posts
				(
					lost_post_id {{ .IntegerPrimaryKey}},
					lost_post_created_at timestamp without time zone NOT NULL,
					lost_post_updated_at timestamp without time zone NOT NULL,
					lost_post_etag text NOT NULL,
					lost_post_member_id {{ .BigInt}} REFERENCES members (member_id) ON UPDATE NO ACTION ON DELETE SET NULL,
					lost_post_subway_line_id {{ .BigInt}} REFERENCES subway_lines (subway_line_id) ON UPDATE NO ACTION ON DELETE SET NULL,
					lost_post_category_id {{ .BigInt}} REFERENCES categories (category_id) ON UPDATE NO ACTION ON DELETE SET NULL,
					lost_post_title text NOT NULL,
					lost_post_content text NOT NULL,
					lost_post_status text NOT NULL,
					lost_post_origin text NOT NULL,
					lost_post_type text NOT NULL,
					lost_post_lost_type text NOT NULL,
					lost_post_storage text NOT NULL,
					lost_post_storage_number text NOT NULL,
					lost_post_page_url text NOT NULL,
					lost_post_received_date timestamp without time zone NOT NULL,
					lost_post_external_source_file_url text NOT NULL,
					lost_post_created_by text NOT NULL
				);
				CREATE INDEX IF NOT EXISTS lost_posts_lost_type_received_date_id_index ON lost_posts(
					lost_post_lost_type,
					lost_post_received_date DESC,
					lost_post_id DESC);
				CREATE INDEX IF NOT EXISTS lost_posts_lost_type_created_at_id_index ON lost_posts(
					lost_post_lost_type,
					lost_post_created_at DESC,
					lost_post_id DESC);
				CREATE INDEX IF NOT EXISTS lost_posts_subway_line_category_index ON lost_posts(
					lost_post_subway_line_id,
					lost_post_category_id);
				CREATE INDEX IF NOT EXISTS lost_posts_page_url_index ON lost_posts(lost_post_page_url);`,
		DownSQL: `DROP INDEX lost_posts_page_url_index;
				  DROP INDEX lost_posts_subway_line_category_index;
				  DROP INDEX lost_posts_lost_type_created_at_id_index;
				  DROP INDEX lost_posts_lost_type_received_date_id_index;
				  DROP TABLE lost_posts;`,
	},
	{
		SequenceNumber: 5,
		Name:           "create_files",
		UpSQL: `CREATE TABLE IF NOT EXISTS files
				(
					file_id {{ .IntegerPrimaryKey}},
					file_created_at timestamp without time zone NOT NULL,
					file_file_name text NOT NULL,
					file_blob_key text NOT NULL,
					file_file_path text NOT NULL
				);
				CREATE UNIQUE INDEX IF NOT EXISTS files_blob_key_unique_index ON files(file_blob_key);
				CREATE TABLE IF NOT EXISTS lost_post_files
				(
					lost_post_file_id {{ .IntegerPrimaryKey}},
					lost_post_file_created_at timestamp without time zone NOT NULL,
					lost_post_file_lost_post_id {{ .BigInt}} NOT NULL REFERENCES lost_posts (lost_post_id) ON UPDATE NO ACTION ON DELETE CASCADE,
					lost_post_file_file_id {{ .BigInt}} NOT NULL REFERENCES files (file_id) ON UPDATE NO ACTION ON DELETE CASCADE
				);
				CREATE INDEX IF NOT EXISTS lost_post_files_lost_post_id_index ON lost_post_files(lost_post_file_lost_post_id);`,
		DownSQL: `DROP INDEX lost_post_files_lost_post_id_index;
				  DROP TABLE lost_post_files;
				  DROP INDEX files_blob_key_unique_index;
				  DROP TABLE files;`,
	},
	{
		SequenceNumber: 6,
		Name:           "create_community_posts",
		UpSQL: `CREATE TABLE IF NOT EXISTS community_posts
				(
					community_post_id {{ .IntegerPrimaryKey}},
					community_post_created_at timestamp without time zone NOT NULL,
					community_post_updated_at timestamp without time zone NOT NULL,
					community_post_etag text NOT NULL,
					community_post_member_id {{ .BigInt}} NOT NULL REFERENCES members (member_id) ON UPDATE NO ACTION ON DELETE CASCADE,
					community_post_subway_line_id {{ .BigInt}} NOT NULL REFERENCES subway_lines (subway_line_id) ON UPDATE NO ACTION ON DELETE CASCADE,
					community_post_title text NOT NULL,
					community_post_content text NOT NULL,
					community_post_category text NOT NULL,
					community_post_region text NOT NULL,
					community_post_views {{ .BigInt}} NOT NULL DEFAULT 0,
					community_post_status text NOT NULL,
					community_post_created_by text NOT NULL
				);
				CREATE INDEX IF NOT EXISTS community_posts_created_at_id_index ON community_posts(
					community_post_created_at DESC,
					community_post_id DESC);`,
		DownSQL: `DROP INDEX community_posts_created_at_id_index;
				  DROP TABLE community_posts;`,
	},
	{
		SequenceNumber: 7,
		Name:           "create_comments",
		UpSQL: `CREATE TABLE IF NOT EXISTS comments
				(
					comment_id {{ .IntegerPrimaryKey}},
					comment_created_at timestamp without time zone NOT NULL,
					comment_updated_at timestamp without time zone NOT NULL,
					comment_etag text NOT NULL,
					comment_post_type text NOT NULL,
					comment_post_id {{ .BigInt}} NOT NULL,
					comment_upper_comment_id {{ .BigInt}} REFERENCES comments (comment_id) ON UPDATE NO ACTION ON DELETE CASCADE,
					comment_member_id {{ .BigInt}} NOT NULL REFERENCES members (member_id) ON UPDATE NO ACTION ON DELETE CASCADE,
					comment_content text NOT NULL,
					comment_status text NOT NULL
				);
				CREATE INDEX IF NOT EXISTS comments_post_index ON comments(comment_post_type, comment_post_id);`,
		DownSQL: `DROP INDEX comments_post_index;
				  DROP TABLE comments;`,
	},
	{
		SequenceNumber: 8,
		Name:           "create_reports",
		UpSQL: `CREATE TABLE IF NOT EXISTS reports
				(
					report_id {{ .IntegerPrimaryKey}},
					report_created_at timestamp without time zone NOT NULL,
					report_source_member_id {{ .BigInt}} NOT NULL REFERENCES members (member_id) ON UPDATE NO ACTION ON DELETE CASCADE,
					report_target_member_id {{ .BigInt}} NOT NULL REFERENCES members (member_id) ON UPDATE NO ACTION ON DELETE CASCADE,
					report_target_post_id {{ .BigInt}} NOT NULL REFERENCES community_posts (community_post_id) ON UPDATE NO ACTION ON DELETE CASCADE
				);
				CREATE UNIQUE INDEX IF NOT EXISTS reports_source_post_unique_index ON reports(report_source_member_id, report_target_post_id);
				CREATE INDEX IF NOT EXISTS reports_target_member_index ON reports(report_target_member_id);`,
		DownSQL: `DROP INDEX reports_target_member_index;
				  DROP INDEX reports_source_post_unique_index;
				  DROP TABLE reports;`,
	},
	{
		SequenceNumber: 9,
		Name:           "create_complaint_messages",
		UpSQL: `CREATE TABLE IF NOT EXISTS complaint_messages
				(
					complaint_message_id {{ .IntegerPrimaryKey}},
					complaint_message_created_at timestamp without time zone NOT NULL,
					complaint_message_member_id {{ .BigInt}} NOT NULL REFERENCES members (member_id) ON UPDATE NO ACTION ON DELETE CASCADE,
					complaint_message_complaint_type text NOT NULL,
					complaint_message_short_content_type text NOT NULL,
					complaint_message_content text NOT NULL,
					complaint_message_phone_number text NOT NULL,
					complaint_message_train_no text NOT NULL,
					complaint_message_location integer NOT NULL,
					complaint_message_subway_line_id {{ .BigInt}} NOT NULL REFERENCES subway_lines (subway_line_id) ON UPDATE NO ACTION ON DELETE CASCADE
				);
				CREATE INDEX IF NOT EXISTS complaint_messages_member_created_at_index ON complaint_messages(
					complaint_message_member_id,
					complaint_message_created_at DESC,
					complaint_message_id DESC);`,
		DownSQL: `DROP INDEX complaint_messages_member_created_at_index;
				  DROP TABLE complaint_messages;`,
	},
}
