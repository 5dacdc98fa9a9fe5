package validators

import "go.mongodb.org/mongo-driver/bson"

var ReservationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"station_id",
			"rider_id",
			"rider_name",
			"vehicle_number",
			"vehicle_class",
			"charging_type",
			"date",
			"start_hour",
			"duration_hours",
			"status",
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

			"rider_name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"vehicle_number": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 20,
			},

			"vehicle_class": bson.M{
				"bsonType": "string",
				"enum": []string{
					"2-wheeler",
					"4-wheeler",
				},
			},

			"charging_type": bson.M{
				"bsonType": "string",
				"enum": []string{
					"AC",
					"DC",
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

			"duration_hours": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  24,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"confirmed",
					"rejected",
					"cancelled",
					"completed",
				},
			},

			"idempotency_key": bson.M{
				"bsonType": "string",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
