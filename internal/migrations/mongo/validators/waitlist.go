package validators

import "go.mongodb.org/mongo-driver/bson"

var WaitlistValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"station_id",
			"rider_id",
			"vehicle_class",
			"date",
			"start_hour",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"station_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"rider_id": bson.M{
				"bsonType": "string",
			},

			"vehicle_class": bson.M{
				"bsonType": "string",
				"enum": []string{
					"2-wheeler",
					"4-wheeler",
				},
			},

			"date": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"start_hour": bson.M{
				"bsonType": "int",
				"minimum":  0,
				"maximum":  23,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
